package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/multimovil/pos-api/internal/domain/entity"
)

// ComboItemDTO componente de un combo.
type ComboItemDTO struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name              string           `json:"name" validate:"required,min=1,max=200"`
	Category          string           `json:"category"`
	SKU               string           `json:"sku" validate:"required,min=1,max=100"`
	CostPrice         decimal.Decimal  `json:"cost_price"`
	PromoPrice        *decimal.Decimal `json:"promo_price"`
	ProfitMargin      *decimal.Decimal `json:"profit_margin"`
	StockLevel        int              `json:"stock_level"`
	LowStockThreshold int              `json:"low_stock_threshold"`
	IsCombo           bool             `json:"is_combo"`
	ComboItems        []ComboItemDTO   `json:"combo_items"`
	IsFixedPrice      bool             `json:"is_fixed_price"`
	IsGiftable        bool             `json:"is_giftable"`
}

// UpdateProductRequest entrada para actualizar un producto. Los campos de
// stock reservado/dañado no se tocan por aquí: los mueven las transacciones.
type UpdateProductRequest struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category          *string          `json:"category"`
	CostPrice         *decimal.Decimal `json:"cost_price"`
	PromoPrice        *decimal.Decimal `json:"promo_price"`
	ClearPromo        bool             `json:"clear_promo"`
	ProfitMargin      *decimal.Decimal `json:"profit_margin"`
	ClearMargin       bool             `json:"clear_margin"`
	StockLevel        *int             `json:"stock_level"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	IsFixedPrice      *bool            `json:"is_fixed_price"`
	IsGiftable        *bool            `json:"is_giftable"`
}

// ProductResponse salida de un producto, con el precio de venta ya resuelto
// en ambas monedas a la tasa BCV vigente.
type ProductResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Category          string           `json:"category"`
	SKU               string           `json:"sku"`
	CostPrice         decimal.Decimal  `json:"cost_price"`
	PromoPrice        *decimal.Decimal `json:"promo_price,omitempty"`
	ProfitMargin      *decimal.Decimal `json:"profit_margin,omitempty"`
	RetailPriceUSD    decimal.Decimal  `json:"retail_price_usd"`
	RetailPriceBs     decimal.Decimal  `json:"retail_price_bs"`
	StockLevel        int              `json:"stock_level"`
	ReservedStock     int              `json:"reserved_stock"`
	DamagedStock      int              `json:"damaged_stock"`
	AvailableStock    int              `json:"available_stock"`
	LowStockThreshold int              `json:"low_stock_threshold"`
	IsLowStock        bool             `json:"is_low_stock"`
	IsCombo           bool             `json:"is_combo"`
	ComboItems        []ComboItemDTO   `json:"combo_items,omitempty"`
	IsFixedPrice      bool             `json:"is_fixed_price"`
	IsGiftable        bool             `json:"is_giftable"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ComboItemsToEntity convierte los componentes DTO a entidad.
func ComboItemsToEntity(items []ComboItemDTO) []entity.ComboItem {
	out := make([]entity.ComboItem, 0, len(items))
	for _, it := range items {
		out = append(out, entity.ComboItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

// ComboItemsFromEntity convierte los componentes entidad a DTO.
func ComboItemsFromEntity(items []entity.ComboItem) []ComboItemDTO {
	out := make([]ComboItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, ComboItemDTO{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}
