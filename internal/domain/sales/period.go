package sales

import (
	"fmt"
	"time"

	"github.com/dmarulanda/ventas-api/internal/domain"
)

// PeriodRange traduce los selectores año/mes del libro de ventas a un rango
// semiabierto [from, to) en la zona horaria indicada.
//
//	year=0, month=0  → sin límites (histórico completo): from y to nil.
//	year>0, month=0  → el año calendario completo.
//	year>0, month=1..12 → ese mes calendario.
//
// Pedir mes sin año es inválido: el selector de mes depende del de año.
func PeriodRange(year, month int, loc *time.Location) (from, to *time.Time, err error) {
	if loc == nil {
		loc = time.Local
	}
	if month < 0 || month > 12 {
		return nil, nil, fmt.Errorf("%w: month debe estar entre 1 y 12", domain.ErrInvalidInput)
	}
	if year == 0 {
		if month != 0 {
			return nil, nil, fmt.Errorf("%w: month requiere year", domain.ErrInvalidInput)
		}
		return nil, nil, nil
	}
	if year < 0 {
		return nil, nil, fmt.Errorf("%w: year debe ser positivo", domain.ErrInvalidInput)
	}

	if month == 0 {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		end := start.AddDate(1, 0, 0)
		return &start, &end, nil
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)
	return &start, &end, nil
}

// PeriodLabel etiqueta legible del período para reportes, ej: "Junio 2024",
// "2024" o "Histórico completo".
func PeriodLabel(year, month int) string {
	switch {
	case year == 0:
		return "Histórico completo"
	case month == 0:
		return fmt.Sprintf("%d", year)
	default:
		return fmt.Sprintf("%s %d", MonthName(time.Month(month)), year)
	}
}

// MonthName nombre del mes en español.
func MonthName(m time.Month) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	if m < time.January || m > time.December {
		return ""
	}
	return months[m-1]
}
