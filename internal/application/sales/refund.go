package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/domain"
	"github.com/multimovil/pos-api/internal/domain/entity"
	"github.com/multimovil/pos-api/internal/domain/repository"
)

// Destinos del stock devuelto en un reembolso.
const (
	DispositionReturn = "return"
	DispositionDamage = "damage"
)

// RefundUseCase revierte una venta completa: restaura inventario, regresa la
// reparación asociada a Pendiente y estampa la venta como reembolsada, todo
// dentro de una sola transacción. Una venta ya cerrada en un arqueo es
// inmutable y el reembolso se rechaza antes de abrir la transacción.
type RefundUseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
}

// NewRefundUseCase construye el caso de uso.
func NewRefundUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, settingsRepo repository.SettingsRepository) *RefundUseCase {
	return &RefundUseCase{txRunner: txRunner, saleRepo: saleRepo, settingsRepo: settingsRepo}
}

// Refund ejecuta el reembolso de la venta saleID.
// La reversión de repuestos de reparación usa el snapshot ConsumedParts que
// quedó persistido en la venta, nunca el estado vivo de la orden (pudo
// cambiar desde entonces).
func (uc *RefundUseCase) Refund(ctx context.Context, saleID string, in dto.RefundRequest) (*dto.SaleResponse, error) {
	if in.Reason == "" {
		return nil, fmt.Errorf("motivo del reembolso: %w", domain.ErrInvalidInput)
	}
	if in.Disposition != DispositionReturn && in.Disposition != DispositionDamage {
		return nil, fmt.Errorf("destino del stock %q: %w", in.Disposition, domain.ErrInvalidInput)
	}

	var refunded *entity.Sale
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		repairRepo repository.RepairJobRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("venta %s: %w", saleID, domain.ErrNotFound)
		}
		if sale.IsReconciled() {
			return domain.ErrSaleReconciled
		}
		if sale.Status == entity.SaleStatusRefunded {
			return domain.ErrSaleRefunded
		}

		if jobID := sale.RepairJobID(); jobID != "" {
			if err := resetRepairJob(repairRepo, jobID); err != nil {
				return err
			}
		}

		damage := in.Disposition == DispositionDamage
		if err := restoreParts(productRepo, sale.ConsumedParts, damage); err != nil {
			return err
		}
		for _, item := range sale.Items {
			if item.IsCustom || item.IsRepair {
				continue
			}
			if err := restoreStock(productRepo, item.ProductID, item.Quantity, damage); err != nil {
				return err
			}
		}

		now := time.Now()
		sale.Status = entity.SaleStatusRefunded
		sale.RefundedAt = &now
		sale.RefundReason = in.Reason
		if err := saleRepo.Update(sale); err != nil {
			return err
		}
		refunded = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	bcvRate := decimal.Zero
	if settings, err := uc.settingsRepo.Get(); err == nil {
		bcvRate = settings.BCVRate
	}
	return ToSaleResponse(refunded, bcvRate), nil
}

// resetRepairJob regresa la orden a Pendiente sin pagos registrados.
func resetRepairJob(repairRepo repository.RepairJobRepository, jobID string) error {
	job, err := repairRepo.GetForUpdate(jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("reparación %s: %w", jobID, domain.ErrNotFound)
	}
	job.Status = entity.RepairStatusPendiente
	job.IsPaid = false
	job.AmountPaid = decimal.Zero
	job.CompletedAt = nil
	job.WarrantyEndsAt = nil
	return repairRepo.Update(job)
}

// restoreParts devuelve al inventario los repuestos del snapshot de la venta.
func restoreParts(productRepo repository.ProductRepository, parts []entity.ReservedPart, damage bool) error {
	for _, part := range parts {
		if err := restoreStock(productRepo, part.ProductID, part.Quantity, damage); err != nil {
			return err
		}
	}
	return nil
}

// restoreStock suma qty de vuelta a StockLevel; con destino "damage" las
// mismas unidades quedan además marcadas como dañadas (nunca ambas cosas
// por separado: es el mismo lote físico).
func restoreStock(productRepo repository.ProductRepository, productID string, qty int, damage bool) error {
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}

	if product.IsCombo {
		for _, comp := range product.ComboItems {
			cp, err := productRepo.GetForUpdate(comp.ProductID)
			if err != nil {
				return err
			}
			if cp == nil {
				return fmt.Errorf("componente %s del combo %s: %w", comp.ProductID, product.Name, domain.ErrNotFound)
			}
			restore := comp.Quantity * qty
			damaged := cp.DamagedStock
			if damage {
				damaged += restore
			}
			if err := productRepo.UpdateStocks(cp.ID, cp.StockLevel+restore, cp.ReservedStock, damaged); err != nil {
				return err
			}
		}
		return nil
	}

	damaged := product.DamagedStock
	if damage {
		damaged += qty
	}
	return productRepo.UpdateStocks(product.ID, product.StockLevel+qty, product.ReservedStock, damaged)
}
