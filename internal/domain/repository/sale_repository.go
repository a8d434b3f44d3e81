package repository

import (
	"time"

	"github.com/multimovil/pos-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia de ventas.
// ListOpenByDay devuelve las ventas del día aún no conciliadas ni
// reembolsadas (las candidatas al cierre de caja).
type SaleRepository interface {
	Create(s *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	GetForUpdate(id string) (*entity.Sale, error)
	ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Sale, error)
	ListOpenByDay(day time.Time) ([]*entity.Sale, error)
	Update(s *entity.Sale) error
	SetReconciliation(saleID, reconciliationID string) error
}
