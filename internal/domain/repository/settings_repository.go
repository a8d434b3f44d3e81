package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/multimovil/pos-api/internal/domain/entity"
)

// SettingsRepository puerto del registro singleton de configuración.
// Get crea el registro con valores por defecto si aún no existe.
type SettingsRepository interface {
	Get() (*entity.AppSettings, error)
	Update(s *entity.AppSettings) error
	UpdateBCVRate(rate decimal.Decimal, at time.Time) error
}
