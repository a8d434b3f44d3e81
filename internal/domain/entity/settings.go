package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsID es la clave del único registro de configuración.
const SettingsID = "main"

// AppSettings es la configuración global de la tienda (registro singleton).
// BCVRate es la tasa oficial y es la ÚNICA usada para conversión USD↔Bs de
// cara al cliente; ParallelRate solo entra en el cálculo del costo de
// reposición dentro del motor de precios. La asimetría es deliberada.
type AppSettings struct {
	ID            string
	BCVRate       decimal.Decimal // Bs por USD, tasa oficial
	ParallelRate  decimal.Decimal // Bs por USD, tasa de reposición
	ProfitMargin  decimal.Decimal // % global
	AutoUpdateBCV bool
	AdminPINHash  string // bcrypt; protege acciones destructivas
	LastUpdated   time.Time
}

// RateIsStale indica si la tasa BCV supera el umbral de antigüedad y el
// sincronizador debe refrescarla.
func (s *AppSettings) RateIsStale(now time.Time, threshold time.Duration) bool {
	return now.Sub(s.LastUpdated) >= threshold
}
