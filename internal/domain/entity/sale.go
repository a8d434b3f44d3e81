package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Monedas operadas por la tienda.
const (
	CurrencyUSD = "USD"
	CurrencyVES = "VES"
)

// Métodos de pago aceptados. La moneda de cada método es fija.
const (
	PaymentCashUSD   = "efectivo_usd"
	PaymentCashBs    = "efectivo_bs"
	PaymentPagoMovil = "pago_movil"
	PaymentCard      = "punto_venta"
	PaymentZelle     = "zelle"
)

// PaymentMethodCurrency mapea método de pago → moneda en la que se registra.
var PaymentMethodCurrency = map[string]string{
	PaymentCashUSD:   CurrencyUSD,
	PaymentZelle:     CurrencyUSD,
	PaymentCashBs:    CurrencyVES,
	PaymentPagoMovil: CurrencyVES,
	PaymentCard:      CurrencyVES,
}

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusRefunded  = "refunded"
)

// CartItem es el snapshot de una línea vendida: nombre y precio quedan
// congelados al momento de la venta aunque el producto cambie después.
type CartItem struct {
	ProductID   string          `json:"product_id,omitempty"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"` // USD
	Quantity    int             `json:"quantity"`
	IsRepair    bool            `json:"is_repair,omitempty"`
	IsPromo     bool            `json:"is_promo,omitempty"`
	IsGift      bool            `json:"is_gift,omitempty"`
	IsCustom    bool            `json:"is_custom,omitempty"`
	RepairJobID string          `json:"repair_job_id,omitempty"`
}

// Subtotal de la línea.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Payment es un pago recibido en una venta, en la moneda de su método.
type Payment struct {
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Reference string          `json:"reference,omitempty"`
}

// Sale es una venta registrada. ConsumedParts guarda el snapshot de los
// repuestos consumidos por líneas de reparación: el reembolso revierte desde
// este snapshot y no desde el estado vivo de la reparación.
type Sale struct {
	ID               string
	Items            []CartItem
	ConsumedParts    []ReservedPart
	Subtotal         decimal.Decimal
	Discount         decimal.Decimal
	TotalAmount      decimal.Decimal
	Payments         []Payment
	ChangeGiven      decimal.Decimal
	Status           string
	ReconciliationID string // no vacío ⇒ venta cerrada en un arqueo, inmutable
	RefundReason     string
	RefundedAt       *time.Time
	CreatedAt        time.Time
	CreatedBy        string
}

// IsReconciled indica si la venta ya fue incluida en un cierre de día.
// Una venta conciliada no admite reembolso.
func (s *Sale) IsReconciled() bool {
	return s.ReconciliationID != ""
}

// RepairJobID devuelve el ID de la reparación asociada a la venta, si la hay.
func (s *Sale) RepairJobID() string {
	for _, it := range s.Items {
		if it.IsRepair && it.RepairJobID != "" {
			return it.RepairJobID
		}
	}
	return ""
}
