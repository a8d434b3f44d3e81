package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComboItem es un componente de un producto combo: al vender el combo se
// descuenta stock de cada componente, nunca del combo en sí.
type ComboItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Product representa un producto del inventario de la tienda.
// CostPrice está en USD; el precio de venta se calcula dinámicamente con las
// tasas de cambio (ver pricing.Suggested) salvo que exista PromoPrice o el
// producto sea de precio fijo.
type Product struct {
	ID                string
	Name              string
	Category          string
	SKU               string
	CostPrice         decimal.Decimal  // costo de reposición en USD
	PromoPrice        *decimal.Decimal // override: precio promocional fijo en USD
	ProfitMargin      *decimal.Decimal // override: margen individual (%), reemplaza el global
	StockLevel        int
	ReservedStock     int // unidades apartadas por reparaciones
	DamagedStock      int
	LowStockThreshold int
	IsCombo           bool
	ComboItems        []ComboItem
	IsFixedPrice      bool
	IsGiftable        bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AvailableStock devuelve las unidades realmente vendibles.
// Puede ser negativo: el sistema no bloquea la venta por falta de stock,
// solo lo refleja (clamp a 0 ocurre al descontar, no aquí).
func (p *Product) AvailableStock() int {
	return p.StockLevel - p.ReservedStock - p.DamagedStock
}

// IsLowStock indica si el producto está por debajo de su umbral de alerta.
func (p *Product) IsLowStock() bool {
	return p.AvailableStock() <= p.LowStockThreshold
}
