package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationRow es el resultado del conteo de un método de pago en el
// cierre de día: lo esperado según las ventas vs lo contado por el operador,
// ambos en la moneda nativa del método.
type ReconciliationRow struct {
	Method     string          `json:"method"`
	Expected   decimal.Decimal `json:"expected"`
	Counted    decimal.Decimal `json:"counted"`
	Difference decimal.Decimal `json:"difference"`
}

// DailyReconciliation es el cierre de caja de un día: agrupa las ventas
// abiertas, registra el conteo por método y las estampa como conciliadas.
// El ID es determinista por fecha (RECON-aaaa-mm-dd): un segundo cierre el
// mismo día colisiona en el insert, lo que actúa como guarda de doble cierre.
type DailyReconciliation struct {
	ID               string
	Date             time.Time
	Rows             []ReconciliationRow
	TotalExpectedUSD decimal.Decimal
	TotalCountedUSD  decimal.Decimal
	TotalDifference  decimal.Decimal // USD; negativo = faltante
	SalesCount       int
	ClosedBy         string
	CreatedAt        time.Time
}
