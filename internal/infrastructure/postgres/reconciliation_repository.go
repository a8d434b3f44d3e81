package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/multimovil/pos-api/internal/domain"
	"github.com/multimovil/pos-api/internal/domain/entity"
	"github.com/multimovil/pos-api/internal/domain/repository"
)

var _ repository.ReconciliationRepository = (*ReconciliationRepo)(nil)

const reconColumns = `id, date, rows, total_expected_usd, total_counted_usd, total_difference,
	sales_count, closed_by, created_at`

// ReconciliationRepo implementación del puerto ReconciliationRepository sobre PostgreSQL.
type ReconciliationRepo struct {
	q Querier
}

// NewReconciliationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReconciliationRepository(q Querier) *ReconciliationRepo {
	return &ReconciliationRepo{q: q}
}

// Create persiste el cierre del día. El ID es determinista por fecha, así
// que la violación de unicidad ES la guarda contra el doble cierre y se
// traduce a ErrDuplicate para que el caso de uso la reconozca.
func (r *ReconciliationRepo) Create(rec *entity.DailyReconciliation) error {
	query := `
		INSERT INTO daily_reconciliations (` + reconColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.Date, rec.Rows, rec.TotalExpectedUSD, rec.TotalCountedUSD, rec.TotalDifference,
		rec.SalesCount, rec.ClosedBy, rec.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert reconciliation: %w", err)
	}
	return nil
}

// GetByID obtiene un cierre por ID.
func (r *ReconciliationRepo) GetByID(id string) (*entity.DailyReconciliation, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+reconColumns+` FROM daily_reconciliations WHERE id = $1`, id)
	rec, err := scanReconciliation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reconciliation: %w", err)
	}
	return rec, nil
}

// List devuelve los cierres más recientes primero.
func (r *ReconciliationRepo) List(limit, offset int) ([]*entity.DailyReconciliation, error) {
	query := `SELECT ` + reconColumns + ` FROM daily_reconciliations ORDER BY date DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reconciliations: %w", err)
	}
	defer rows.Close()
	var list []*entity.DailyReconciliation
	for rows.Next() {
		rec, err := scanReconciliation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reconciliation: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanReconciliation(row pgx.Row) (*entity.DailyReconciliation, error) {
	var rec entity.DailyReconciliation
	err := row.Scan(
		&rec.ID, &rec.Date, &rec.Rows, &rec.TotalExpectedUSD, &rec.TotalCountedUSD,
		&rec.TotalDifference, &rec.SalesCount, &rec.ClosedBy, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
