package dto

import "github.com/shopspring/decimal"

// SalesSummaryResponse resumen del día para el tablero.
type SalesSummaryResponse struct {
	Date            string                     `json:"date"`
	SalesCount      int                        `json:"sales_count"`
	TotalUSD        decimal.Decimal            `json:"total_usd"`
	TotalBs         decimal.Decimal            `json:"total_bs"`
	ByPaymentMethod map[string]decimal.Decimal `json:"by_payment_method"`
	LowStock        []ProductResponse          `json:"low_stock"`
}

// SalesExportRow una fila del archivo xlsx: una línea de venta con su
// categoría de producto resuelta.
type SalesExportRow struct {
	SaleID      string
	Date        string
	ProductName string
	Category    string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	Status      string
}
