package usecase

import (
	"fmt"
	"time"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/domain"
	"github.com/multimovil/pos-api/internal/domain/entity"
	"github.com/multimovil/pos-api/internal/domain/id"
	"github.com/multimovil/pos-api/internal/domain/pricing"
	"github.com/multimovil/pos-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Los campos de stock
// reservado/dañado no se editan por aquí: los mueven las transacciones de
// cobro, reembolso y reserva de repuestos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	settingsRepo repository.SettingsRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, settingsRepo repository.SettingsRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, settingsRepo: settingsRepo}
}

// Create crea un producto nuevo. El SKU debe ser único; un combo debe
// declarar componentes existentes y no lleva stock propio.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SKU == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.PromoPrice != nil && in.PromoPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.ProfitMargin != nil && in.ProfitMargin.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	in.SKU = NormalizeSKU(in.SKU)
	in.Category = NormalizeCategory(in.Category)
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.IsCombo {
		if len(in.ComboItems) == 0 {
			return nil, domain.ErrInvalidInput
		}
		for _, it := range in.ComboItems {
			if it.Quantity <= 0 {
				return nil, domain.ErrInvalidInput
			}
			comp, err := uc.repo.GetByID(it.ProductID)
			if err != nil {
				return nil, err
			}
			if comp == nil {
				return nil, fmt.Errorf("componente %s: %w", it.ProductID, domain.ErrNotFound)
			}
			if comp.IsCombo {
				// Un combo no puede contener otro combo.
				return nil, domain.ErrInvalidInput
			}
		}
		in.StockLevel = 0
	}

	now := time.Now()
	product := &entity.Product{
		ID:                id.NewProduct(),
		Name:              in.Name,
		Category:          in.Category,
		SKU:               in.SKU,
		CostPrice:         in.CostPrice,
		PromoPrice:        in.PromoPrice,
		ProfitMargin:      in.ProfitMargin,
		StockLevel:        in.StockLevel,
		LowStockThreshold: in.LowStockThreshold,
		IsCombo:           in.IsCombo,
		ComboItems:        dto.ComboItemsToEntity(in.ComboItems),
		IsFixedPrice:      in.IsFixedPrice,
		IsGiftable:        in.IsGiftable,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product)
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(productID string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return uc.toResponse(product)
}

// List lista productos, opcionalmente filtrados por categoría.
func (uc *ProductUseCase) List(category string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(category, limit, offset)
	if err != nil {
		return nil, err
	}
	settings, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ProductToResponse(p, settings))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListLowStock lista los productos bajo su umbral de alerta.
func (uc *ProductUseCase) ListLowStock() ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	settings, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ProductToResponse(p, settings))
	}
	return items, nil
}

// Update actualiza los datos editables de un producto. ClearPromo/ClearMargin
// distinguen "quitar el override" de "no tocarlo".
func (uc *ProductUseCase) Update(productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = NormalizeCategory(*in.Category)
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.CostPrice = *in.CostPrice
	}
	if in.ClearPromo {
		product.PromoPrice = nil
	} else if in.PromoPrice != nil {
		if in.PromoPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.PromoPrice = in.PromoPrice
	}
	if in.ClearMargin {
		product.ProfitMargin = nil
	} else if in.ProfitMargin != nil {
		if in.ProfitMargin.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.ProfitMargin = in.ProfitMargin
	}
	if in.StockLevel != nil {
		if *in.StockLevel < 0 || product.IsCombo {
			return nil, domain.ErrInvalidInput
		}
		product.StockLevel = *in.StockLevel
	}
	if in.LowStockThreshold != nil {
		product.LowStockThreshold = *in.LowStockThreshold
	}
	if in.IsFixedPrice != nil {
		product.IsFixedPrice = *in.IsFixedPrice
	}
	if in.IsGiftable != nil {
		product.IsGiftable = *in.IsGiftable
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product)
}

// Delete elimina un producto del catálogo.
func (uc *ProductUseCase) Delete(productID string) error {
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.ReservedStock > 0 {
		// Con repuestos apartados por reparaciones abiertas no se borra.
		return domain.ErrConflict
	}
	return uc.repo.Delete(productID)
}

func (uc *ProductUseCase) toResponse(p *entity.Product) (*dto.ProductResponse, error) {
	settings, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	return ProductToResponse(p, settings), nil
}

// ProductToResponse arma la respuesta con el precio de venta ya resuelto en
// USD y su equivalente en Bs a la tasa BCV.
func ProductToResponse(p *entity.Product, settings *entity.AppSettings) *dto.ProductResponse {
	retail := pricing.Retail(p, settings)
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Category:          p.Category,
		SKU:               p.SKU,
		CostPrice:         p.CostPrice,
		PromoPrice:        p.PromoPrice,
		ProfitMargin:      p.ProfitMargin,
		RetailPriceUSD:    retail,
		RetailPriceBs:     pricing.Convert(retail, entity.CurrencyUSD, entity.CurrencyVES, settings.BCVRate).Round(2),
		StockLevel:        p.StockLevel,
		ReservedStock:     p.ReservedStock,
		DamagedStock:      p.DamagedStock,
		AvailableStock:    p.AvailableStock(),
		LowStockThreshold: p.LowStockThreshold,
		IsLowStock:        p.IsLowStock(),
		IsCombo:           p.IsCombo,
		ComboItems:        dto.ComboItemsFromEntity(p.ComboItems),
		IsFixedPrice:      p.IsFixedPrice,
		IsGiftable:        p.IsGiftable,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
