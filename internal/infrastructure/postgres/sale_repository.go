package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/multimovil/pos-api/internal/domain"
	"github.com/multimovil/pos-api/internal/domain/entity"
	"github.com/multimovil/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, items, consumed_parts, subtotal, discount, total_amount, payments,
	change_given, status, reconciliation_id, refund_reason, refunded_at, created_at, created_by`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta nueva.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Items, s.ConsumedParts, s.Subtotal, s.Discount, s.TotalAmount, s.Payments,
		s.ChangeGiven, s.Status, nullIfEmpty(s.ReconciliationID), nullIfEmpty(s.RefundReason),
		s.RefundedAt, s.CreatedAt, s.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.get(`SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetForUpdate obtiene una venta bloqueando la fila (SELECT FOR UPDATE).
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.get(`SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) get(query, id string) (*entity.Sale, error) {
	row := r.q.QueryRow(context.Background(), query, id)
	s, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// ListByDateRange lista ventas con created_at en [from, to), más recientes primero.
func (r *SaleRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales
		WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at DESC`
	args := []any{from, to}
	if limit > 0 {
		query += ` LIMIT $3 OFFSET $4`
		args = append(args, limit, offset)
	}
	return r.list(query, args...)
}

// ListOpenByDay devuelve las ventas del día aún no conciliadas ni
// reembolsadas: las candidatas al cierre de caja.
func (r *SaleRepo) ListOpenByDay(day time.Time) ([]*entity.Sale, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)
	query := `SELECT ` + saleColumns + ` FROM sales
		WHERE created_at >= $1 AND created_at < $2
		  AND status = $3 AND reconciliation_id IS NULL
		ORDER BY created_at`
	return r.list(query, from, to, entity.SaleStatusCompleted)
}

func (r *SaleRepo) list(query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update reescribe el estado mutable de la venta (reembolso).
func (r *SaleRepo) Update(s *entity.Sale) error {
	query := `
		UPDATE sales
		SET status = $2, refund_reason = $3, refunded_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		s.ID, s.Status, nullIfEmpty(s.RefundReason), s.RefundedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetReconciliation estampa la venta con el ID del arqueo que la cerró.
func (r *SaleRepo) SetReconciliation(saleID, reconciliationID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET reconciliation_id = $2 WHERE id = $1`,
		saleID, reconciliationID,
	)
	if err != nil {
		return fmt.Errorf("set reconciliation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var reconID, refundReason *string
	err := row.Scan(
		&s.ID, &s.Items, &s.ConsumedParts, &s.Subtotal, &s.Discount, &s.TotalAmount, &s.Payments,
		&s.ChangeGiven, &s.Status, &reconID, &refundReason, &s.RefundedAt, &s.CreatedAt, &s.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if reconID != nil {
		s.ReconciliationID = *reconID
	}
	if refundReason != nil {
		s.RefundReason = *refundReason
	}
	return &s, nil
}
