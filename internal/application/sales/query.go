package sales

import (
	"context"
	"time"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/domain/repository"
)

// SaleQueryUseCase consultas de solo lectura sobre ventas.
type SaleQueryUseCase struct {
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
}

// NewSaleQueryUseCase construye el caso de uso.
func NewSaleQueryUseCase(saleRepo repository.SaleRepository, settingsRepo repository.SettingsRepository) *SaleQueryUseCase {
	return &SaleQueryUseCase{saleRepo: saleRepo, settingsRepo: settingsRepo}
}

// GetByID obtiene una venta por ID.
func (uc *SaleQueryUseCase) GetByID(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	settings, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale, settings.BCVRate), nil
}

// ListByDateRange lista ventas en [from, to) con paginación.
func (uc *SaleQueryUseCase) ListByDateRange(ctx context.Context, from, to time.Time, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.ListByDateRange(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	settings, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToSaleResponse(s, settings.BCVRate))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
