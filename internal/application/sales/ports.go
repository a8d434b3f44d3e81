package sales

import (
	"context"

	"github.com/multimovil/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la única vía por la que el cobro, el
// reembolso y el cierre de día tocan los campos de stock: todo
// read-modify-write ocurre dentro de una transacción con bloqueo de fila,
// nunca con un decremento ciego.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		repairRepo repository.RepairJobRepository,
		saleRepo repository.SaleRepository,
	) error) error

	RunCloseDay(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		reconRepo repository.ReconciliationRepository,
	) error) error
}
