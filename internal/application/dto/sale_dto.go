package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItemRequest una línea del carrito al momento del cobro.
// Para líneas de inventario el precio lo resuelve el servidor; UnitPrice
// solo se respeta en líneas custom/regalo y como abono parcial en
// reparaciones.
type CartItemRequest struct {
	ProductID   string           `json:"product_id"`
	Name        string           `json:"name"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Quantity    int              `json:"quantity" validate:"min=1"`
	IsCustom    bool             `json:"is_custom"`
	IsGift      bool             `json:"is_gift"`
	RepairJobID string           `json:"repair_job_id"`
}

// PaymentRequest un pago recibido, en la moneda de su método.
type PaymentRequest struct {
	Method    string          `json:"method" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

// CheckoutRequest entrada del cobro.
type CheckoutRequest struct {
	Items    []CartItemRequest `json:"items" validate:"required,min=1"`
	Payments []PaymentRequest  `json:"payments" validate:"required,min=1"`
	Discount decimal.Decimal   `json:"discount"`
}

// RefundRequest entrada del reembolso de una venta.
// Disposition decide el destino del stock devuelto: "return" lo regresa al
// inventario vendible, "damage" lo regresa y además lo marca dañado.
type RefundRequest struct {
	Reason      string `json:"reason" validate:"required"`
	Disposition string `json:"disposition" validate:"required,oneof=return damage"`
}

// SaleItemResponse línea de una venta.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id,omitempty"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	IsRepair    bool            `json:"is_repair,omitempty"`
	IsPromo     bool            `json:"is_promo,omitempty"`
	IsGift      bool            `json:"is_gift,omitempty"`
	IsCustom    bool            `json:"is_custom,omitempty"`
	RepairJobID string          `json:"repair_job_id,omitempty"`
}

// SalePaymentResponse pago registrado en la venta.
type SalePaymentResponse struct {
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Reference string          `json:"reference,omitempty"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID               string                `json:"id"`
	Items            []SaleItemResponse    `json:"items"`
	Subtotal         decimal.Decimal       `json:"subtotal"`
	Discount         decimal.Decimal       `json:"discount"`
	TotalAmount      decimal.Decimal       `json:"total_amount"`
	TotalAmountBs    decimal.Decimal       `json:"total_amount_bs"`
	Payments         []SalePaymentResponse `json:"payments"`
	ChangeGiven      decimal.Decimal       `json:"change_given"`
	Status           string                `json:"status"`
	ReconciliationID string                `json:"reconciliation_id,omitempty"`
	RefundReason     string                `json:"refund_reason,omitempty"`
	RefundedAt       *time.Time            `json:"refunded_at,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	CreatedBy        string                `json:"created_by"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
