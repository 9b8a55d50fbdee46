package entity

import "time"

// Company representa el negocio dueño de los datos (tenant). Todos los
// productos, sucursales y ventas quedan aislados por su CompanyID.
type Company struct {
	ID        string
	Name      string
	TaxID     string // NIT o identificación tributaria, opcional
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Módulos contratables por empresa (deben coincidir con el CHECK de la tabla
// company_modules).
const (
	ModuleImports = "imports" // importación masiva de catálogo por CSV
	ModuleReports = "reports" // reporte de ventas en PDF
)

// CompanyModule representa la activación de un módulo en una empresa.
type CompanyModule struct {
	ID          string
	CompanyID   string
	ModuleName  string // ver constantes Module*
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sin vencimiento
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
