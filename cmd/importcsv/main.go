// importcsv carga un catálogo de productos desde un archivo CSV directamente
// a la base de datos, con la misma validación todo-o-nada del endpoint
// POST /api/products/import. Acepta archivos en UTF-8 o Windows-1252.
//
// Uso: go run ./cmd/importcsv -company <uuid> [ruta/productos.csv]
// Por defecto busca productos.csv en el directorio actual.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dmarulanda/ventas-api/internal/application/importer"
	"github.com/dmarulanda/ventas-api/internal/infrastructure/postgres"
	"github.com/dmarulanda/ventas-api/pkg/config"
)

func main() {
	companyID := flag.String("company", "", "ID de la empresa dueña del catálogo (obligatorio)")
	flag.Parse()

	if *companyID == "" {
		fmt.Fprintln(os.Stderr, "falta -company: ID de la empresa dueña del catálogo")
		flag.Usage()
		os.Exit(2)
	}
	csvPath := "productos.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(postgres.NewTxRunner(pool), nil)
	result, err := imp.ImportProducts(ctx, *companyID, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Importar catálogo: %v\n", err)
		os.Exit(1)
	}
	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stderr, "Archivo rechazado, %d filas con errores (no se importó nada):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  línea %d: %s\n", e.Line, e.Reason)
		}
		os.Exit(1)
	}

	fmt.Printf("Importados %d productos desde %s\n", result.Imported, csvPath)
}
