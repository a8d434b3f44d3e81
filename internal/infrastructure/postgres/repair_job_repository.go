package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/multimovil/pos-api/internal/domain/entity"
	"github.com/multimovil/pos-api/internal/domain/repository"
)

var _ repository.RepairJobRepository = (*RepairJobRepo)(nil)

const repairColumns = `id, customer_name, customer_phone, device_brand, device_model, device_imei,
	reported_issue, status, estimated_cost, amount_paid, is_paid, reserved_parts,
	created_at, completed_at, warranty_ends_at`

// RepairJobRepo implementación del puerto RepairJobRepository sobre PostgreSQL (usable con pool o tx).
type RepairJobRepo struct {
	q Querier
}

// NewRepairJobRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRepairJobRepository(q Querier) *RepairJobRepo {
	return &RepairJobRepo{q: q}
}

// Create persiste una orden de reparación nueva.
func (r *RepairJobRepo) Create(j *entity.RepairJob) error {
	query := `
		INSERT INTO repair_jobs (` + repairColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		j.ID, j.CustomerName, nullIfEmpty(j.CustomerPhone), nullIfEmpty(j.DeviceBrand),
		j.DeviceModel, nullIfEmpty(j.DeviceIMEI), j.ReportedIssue, j.Status,
		j.EstimatedCost, j.AmountPaid, j.IsPaid, j.ReservedParts,
		j.CreatedAt, j.CompletedAt, j.WarrantyEndsAt,
	)
	if err != nil {
		return fmt.Errorf("insert repair job: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *RepairJobRepo) GetByID(id string) (*entity.RepairJob, error) {
	return r.get(`SELECT `+repairColumns+` FROM repair_jobs WHERE id = $1`, id)
}

// GetForUpdate obtiene una orden bloqueando la fila (SELECT FOR UPDATE).
func (r *RepairJobRepo) GetForUpdate(id string) (*entity.RepairJob, error) {
	return r.get(`SELECT `+repairColumns+` FROM repair_jobs WHERE id = $1 FOR UPDATE`, id)
}

func (r *RepairJobRepo) get(query, id string) (*entity.RepairJob, error) {
	row := r.q.QueryRow(context.Background(), query, id)
	j, err := scanRepairJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get repair job: %w", err)
	}
	return j, nil
}

// List lista órdenes, opcionalmente por estado, de la más reciente a la más vieja.
func (r *RepairJobRepo) List(status string, limit, offset int) ([]*entity.RepairJob, error) {
	query := `SELECT ` + repairColumns + ` FROM repair_jobs`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list repair jobs: %w", err)
	}
	defer rows.Close()
	var list []*entity.RepairJob
	for rows.Next() {
		j, err := scanRepairJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan repair job: %w", err)
		}
		list = append(list, j)
	}
	return list, rows.Err()
}

// Update reescribe la orden completa (datos, estado, pagos y repuestos).
func (r *RepairJobRepo) Update(j *entity.RepairJob) error {
	query := `
		UPDATE repair_jobs
		SET customer_name = $2, customer_phone = $3, reported_issue = $4, status = $5,
		    estimated_cost = $6, amount_paid = $7, is_paid = $8, reserved_parts = $9,
		    completed_at = $10, warranty_ends_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		j.ID, j.CustomerName, nullIfEmpty(j.CustomerPhone), j.ReportedIssue, j.Status,
		j.EstimatedCost, j.AmountPaid, j.IsPaid, j.ReservedParts,
		j.CompletedAt, j.WarrantyEndsAt,
	)
	if err != nil {
		return fmt.Errorf("update repair job: %w", err)
	}
	return nil
}

// Delete elimina una orden por ID.
func (r *RepairJobRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM repair_jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete repair job: %w", err)
	}
	return nil
}

func scanRepairJob(row pgx.Row) (*entity.RepairJob, error) {
	var j entity.RepairJob
	var phone, brand, imei *string
	err := row.Scan(
		&j.ID, &j.CustomerName, &phone, &brand, &j.DeviceModel, &imei,
		&j.ReportedIssue, &j.Status, &j.EstimatedCost, &j.AmountPaid, &j.IsPaid, &j.ReservedParts,
		&j.CreatedAt, &j.CompletedAt, &j.WarrantyEndsAt,
	)
	if err != nil {
		return nil, err
	}
	if phone != nil {
		j.CustomerPhone = *phone
	}
	if brand != nil {
		j.DeviceBrand = *brand
	}
	if imei != nil {
		j.DeviceIMEI = *imei
	}
	return &j, nil
}
