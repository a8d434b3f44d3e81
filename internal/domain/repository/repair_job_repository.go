package repository

import "github.com/multimovil/pos-api/internal/domain/entity"

// RepairJobRepository puerto de persistencia de órdenes de reparación.
type RepairJobRepository interface {
	Create(j *entity.RepairJob) error
	GetByID(id string) (*entity.RepairJob, error)
	GetForUpdate(id string) (*entity.RepairJob, error)
	List(status string, limit, offset int) ([]*entity.RepairJob, error)
	Update(j *entity.RepairJob) error
	Delete(id string) error
}
