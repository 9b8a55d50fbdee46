package dto

// ImportRowError una línea del CSV rechazada y su motivo.
type ImportRowError struct {
	Line   int    `json:"line"` // número de línea en el archivo (1 = encabezado)
	Reason string `json:"reason"`
}

// ImportResultDTO respuesta de POST /api/products/import.
// La importación es todo-o-nada: si Errors trae algo, Imported es 0 y no se
// escribió ninguna fila.
type ImportResultDTO struct {
	Imported int              `json:"imported"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
