package reports

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/application/usecase"
	"github.com/multimovil/pos-api/internal/domain"
	"github.com/multimovil/pos-api/internal/domain/entity"
	"github.com/multimovil/pos-api/internal/domain/pricing"
	"github.com/multimovil/pos-api/internal/domain/repository"
)

// ReportUseCase arma el resumen del tablero, el export xlsx de ventas y los
// tickets PDF.
type ReportUseCase struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	repairRepo   repository.RepairJobRepository
	settingsRepo repository.SettingsRepository
	receipts     ReceiptGenerator
	exporter     SalesExporter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	repairRepo repository.RepairJobRepository,
	settingsRepo repository.SettingsRepository,
	receipts ReceiptGenerator,
	exporter SalesExporter,
) *ReportUseCase {
	return &ReportUseCase{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		repairRepo:   repairRepo,
		settingsRepo: settingsRepo,
		receipts:     receipts,
		exporter:     exporter,
	}
}

// TodaySummary arma el resumen del día para el tablero: totales, desglose
// por método de pago y productos bajo umbral. Las ventas reembolsadas no
// suman al total.
func (uc *ReportUseCase) TodaySummary(now time.Time) (*dto.SalesSummaryResponse, error) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)
	ventas, err := uc.saleRepo.ListByDateRange(from, to, 0, 0)
	if err != nil {
		return nil, err
	}
	settings, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, err
	}

	summary := &dto.SalesSummaryResponse{
		Date:            from.Format("2006-01-02"),
		ByPaymentMethod: make(map[string]decimal.Decimal),
	}
	for _, s := range ventas {
		if s.Status != entity.SaleStatusCompleted {
			continue
		}
		summary.SalesCount++
		summary.TotalUSD = summary.TotalUSD.Add(s.TotalAmount)
		for _, p := range s.Payments {
			summary.ByPaymentMethod[p.Method] = summary.ByPaymentMethod[p.Method].Add(p.Amount)
		}
	}
	summary.TotalBs = pricing.Convert(summary.TotalUSD, entity.CurrencyUSD, entity.CurrencyVES, settings.BCVRate).Round(2)

	lowStock, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	for _, p := range lowStock {
		summary.LowStock = append(summary.LowStock, *usecase.ProductToResponse(p, settings))
	}
	return summary, nil
}

// ExportSales genera el xlsx de ventas del rango [from, to). Cada línea de
// venta es una fila, con la categoría del producto resuelta contra el
// catálogo actual (un producto borrado exporta categoría vacía).
func (uc *ReportUseCase) ExportSales(from, to time.Time) ([]byte, error) {
	ventas, err := uc.saleRepo.ListByDateRange(from, to, 0, 0)
	if err != nil {
		return nil, err
	}
	categorias := make(map[string]string)
	var rows []dto.SalesExportRow
	for _, s := range ventas {
		for _, item := range s.Items {
			categoria := ""
			if item.ProductID != "" {
				c, ok := categorias[item.ProductID]
				if !ok {
					if p, err := uc.productRepo.GetByID(item.ProductID); err == nil && p != nil {
						c = p.Category
					}
					categorias[item.ProductID] = c
				}
				categoria = c
			}
			rows = append(rows, dto.SalesExportRow{
				SaleID:      s.ID,
				Date:        s.CreatedAt.Format("2006-01-02 15:04"),
				ProductName: item.Name,
				Category:    categoria,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Subtotal:    item.Subtotal(),
				Status:      s.Status,
			})
		}
	}
	return uc.exporter.Export(rows)
}

// SaleReceipt genera el ticket PDF de una venta.
func (uc *ReportUseCase) SaleReceipt(saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("venta %s: %w", saleID, domain.ErrNotFound)
	}
	settings, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	return uc.receipts.SaleReceipt(sale, settings)
}

// RepairTicket genera la orden de servicio PDF de una reparación.
func (uc *ReportUseCase) RepairTicket(jobID string) ([]byte, error) {
	job, err := uc.repairRepo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("reparación %s: %w", jobID, domain.ErrNotFound)
	}
	return uc.receipts.RepairTicket(job)
}
