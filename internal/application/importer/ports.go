package importer

import (
	"context"

	"github.com/dmarulanda/ventas-api/internal/domain/repository"
)

// BatchTxRunner ejecuta la escritura de la importación dentro de una
// transacción de BD: o entran todas las filas del archivo o ninguna.
type BatchTxRunner interface {
	RunImport(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error
}
