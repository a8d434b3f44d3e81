package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CloseDayRequest montos contados por método de pago, en la moneda nativa
// de cada método. Los métodos no incluidos cuentan como 0.
type CloseDayRequest struct {
	Counted map[string]decimal.Decimal `json:"counted" validate:"required"`
}

// ReconciliationRowResponse fila del arqueo por método de pago.
type ReconciliationRowResponse struct {
	Method     string          `json:"method"`
	Expected   decimal.Decimal `json:"expected"`
	Counted    decimal.Decimal `json:"counted"`
	Difference decimal.Decimal `json:"difference"`
}

// ReconciliationResponse salida del cierre de día.
type ReconciliationResponse struct {
	ID               string                      `json:"id"`
	Date             string                      `json:"date"`
	Rows             []ReconciliationRowResponse `json:"rows"`
	TotalExpectedUSD decimal.Decimal             `json:"total_expected_usd"`
	TotalCountedUSD  decimal.Decimal             `json:"total_counted_usd"`
	TotalDifference  decimal.Decimal             `json:"total_difference"`
	SalesCount       int                         `json:"sales_count"`
	ClosedBy         string                      `json:"closed_by"`
	CreatedAt        time.Time                   `json:"created_at"`
}

// ReconciliationListResponse lista paginada de cierres.
type ReconciliationListResponse struct {
	Items []ReconciliationResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}
