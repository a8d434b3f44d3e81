package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/multimovil/pos-api/internal/application/sales"
	"github.com/multimovil/pos-api/internal/application/usecase"
	"github.com/multimovil/pos-api/internal/domain/repository"
)

// Ensure TxRunner implements sales.TxRunner and usecase.TxRunner.
var _ sales.TxRunner = (*TxRunner)(nil)
var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Es la vía por la que cobro, reembolso y reserva de
// repuestos hacen su read-modify-write de stock con bloqueo de fila.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	repairRepo repository.RepairJobRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	repairRepo := NewRepairJobRepository(tx)
	saleRepo := NewSaleRepository(tx)

	if err := fn(productRepo, repairRepo, saleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCloseDay inicia una transacción con los repos del cierre de día: el
// insert del arqueo y el estampado de todas las ventas confirman juntos.
func (r *TxRunner) RunCloseDay(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	reconRepo repository.ReconciliationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	saleRepo := NewSaleRepository(tx)
	reconRepo := NewReconciliationRepository(tx)

	if err := fn(saleRepo, reconRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
