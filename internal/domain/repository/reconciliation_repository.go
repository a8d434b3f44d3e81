package repository

import "github.com/multimovil/pos-api/internal/domain/entity"

// ReconciliationRepository puerto de persistencia de cierres de día.
// Create debe retornar domain.ErrDuplicate si ya existe un cierre con el
// mismo ID (mismo día): esa colisión es la guarda contra el doble cierre.
type ReconciliationRepository interface {
	Create(r *entity.DailyReconciliation) error
	GetByID(id string) (*entity.DailyReconciliation, error)
	List(limit, offset int) ([]*entity.DailyReconciliation, error)
}
