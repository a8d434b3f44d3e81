package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest entrada del formulario de configuración.
type UpdateSettingsRequest struct {
	BCVRate       *decimal.Decimal `json:"bcv_rate"`
	ParallelRate  *decimal.Decimal `json:"parallel_rate"`
	ProfitMargin  *decimal.Decimal `json:"profit_margin"`
	AutoUpdateBCV *bool            `json:"auto_update_bcv"`
	AdminPIN      *string          `json:"admin_pin"` // en claro; se almacena el hash
}

// SettingsResponse configuración vigente (el hash del PIN nunca sale).
type SettingsResponse struct {
	BCVRate       decimal.Decimal `json:"bcv_rate"`
	ParallelRate  decimal.Decimal `json:"parallel_rate"`
	ProfitMargin  decimal.Decimal `json:"profit_margin"`
	AutoUpdateBCV bool            `json:"auto_update_bcv"`
	LastUpdated   time.Time       `json:"last_updated"`
}

// RatesResponse tasas vigentes para la vista pública de precios.
type RatesResponse struct {
	BCVRate      decimal.Decimal `json:"bcv_rate"`
	ParallelRate decimal.Decimal `json:"parallel_rate"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// VerifyPINRequest verificación del PIN de administrador.
type VerifyPINRequest struct {
	PIN string `json:"pin" validate:"required"`
}
