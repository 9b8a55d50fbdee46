package events

// Tipos de evento emitidos tras cada mutación confirmada.
const (
	ProductCreated   = "product.created"
	ProductUpdated   = "product.updated"
	ProductDeleted   = "product.deleted"
	BranchCreated    = "branch.created"
	BranchUpdated    = "branch.updated"
	StockDistributed = "stock.distributed"
	SaleCreated      = "sale.created"
	CatalogImported  = "catalog.imported"
)

// Event es la notificación de cambio que se difunde a los clientes conectados
// de la misma empresa. Payload es un resumen compacto; el cliente vuelve a
// consultar si necesita el estado completo.
type Event struct {
	Type     string `json:"type"`
	EntityID string `json:"entity_id,omitempty"`
	Payload  any    `json:"payload,omitempty"`

	// CompanyID decide a qué clientes llega el evento; no viaja en el JSON.
	CompanyID string `json:"-"`
}

// Publisher es el puerto de publicación. Los use cases publican después de
// confirmar la escritura; la implementación websocket vive en interfaces/ws.
type Publisher interface {
	Publish(event Event)
}
