package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describe una regla de validación incumplida en un campo.
type FieldError struct {
	Field string `json:"field"` // nombre del campo según su tag json
	Rule  string `json:"rule"`  // regla incumplida (required, email, min, ...)
	Param string `json:"param"` // parámetro de la regla, si aplica
}

func (e FieldError) String() string {
	if e.Param != "" {
		return fmt.Sprintf("%s incumple %s=%s", e.Field, e.Rule, e.Param)
	}
	return fmt.Sprintf("%s incumple %s", e.Field, e.Rule)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Reportar los campos por su nombre json, no por el nombre del struct
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateStruct aplica las reglas de los tags `validate` del struct y
// devuelve una entrada por campo incumplido. Slice vacío = struct válido.
func ValidateStruct(data any) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var errs []FieldError
	for _, fe := range err.(validator.ValidationErrors) {
		errs = append(errs, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return errs
}
