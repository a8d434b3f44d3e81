package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/domain"
	"github.com/multimovil/pos-api/internal/domain/entity"
	"github.com/multimovil/pos-api/internal/domain/id"
	"github.com/multimovil/pos-api/internal/domain/pricing"
	"github.com/multimovil/pos-api/internal/domain/repository"
)

// CheckoutUseCase ejecuta el cobro de un carrito: descuenta inventario
// (combos por componente, reparaciones por repuesto reservado) dentro de una
// transacción, y registra la venta con el snapshot de precios y pagos.
//
// La venta se escribe DESPUÉS de que la transacción de stock confirma, en
// una escritura separada. Un crash entre ambos pasos puede dejar stock
// descontado sin venta registrada; es una brecha aceptada del diseño
// original que se preserva tal cual.
type CheckoutUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	repairRepo   repository.RepairJobRepository
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	repairRepo repository.RepairJobRepository,
	saleRepo repository.SaleRepository,
	settingsRepo repository.SettingsRepository,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		repairRepo:   repairRepo,
		saleRepo:     saleRepo,
		settingsRepo: settingsRepo,
	}
}

// resolvedLine es una línea del carrito con precio y nombre ya resueltos
// por el servidor (pre-flight, fuera de la transacción).
type resolvedLine struct {
	item entity.CartItem
}

// Checkout valida el carrito, resuelve precios, descuenta stock en una sola
// transacción y persiste la venta. Si cualquier lectura de stock falla
// (producto inexistente) la transacción aborta completa y no se escribe
// nada: el carrito queda intacto para corrección.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, userID string, in dto.CheckoutRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 || len(in.Payments) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for _, p := range in.Payments {
		if _, ok := entity.PaymentMethodCurrency[p.Method]; !ok {
			return nil, fmt.Errorf("método de pago %q: %w", p.Method, domain.ErrInvalidInput)
		}
		if p.Amount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	settings, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, err
	}

	lines, err := uc.resolveLines(in.Items, settings)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.item.Subtotal())
	}
	total := subtotal.Sub(in.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	payments, changeGiven, err := settleChange(in.Payments, total, settings.BCVRate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var consumed []entity.ReservedPart

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		repairRepo repository.RepairJobRepository,
		_ repository.SaleRepository,
	) error {
		for i := range lines {
			line := &lines[i]
			switch {
			case line.item.IsCustom:
				// Ítems custom nunca tocan inventario.
			case line.item.IsRepair:
				parts, err := consumeRepair(productRepo, repairRepo, line, now)
				if err != nil {
					return err
				}
				consumed = append(consumed, parts...)
			default:
				if err := decrementStock(productRepo, line.item.ProductID, line.item.Quantity, now); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sale := &entity.Sale{
		ID:            id.NewSale(now),
		ConsumedParts: consumed,
		Subtotal:      subtotal,
		Discount:      in.Discount,
		TotalAmount:   total,
		Payments:      payments,
		ChangeGiven:   changeGiven,
		Status:        entity.SaleStatusCompleted,
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	for _, l := range lines {
		sale.Items = append(sale.Items, l.item)
	}
	if err := uc.saleRepo.Create(sale); err != nil {
		return nil, fmt.Errorf("registrar venta: %w", err)
	}

	return ToSaleResponse(sale, settings.BCVRate), nil
}

// resolveLines fija nombre y precio de cada línea en el servidor.
// Custom/regalo sin producto usan el precio del cliente; las reparaciones
// cobran el abono indicado o el saldo pendiente; el resto sale del motor de
// precios con la configuración vigente.
func (uc *CheckoutUseCase) resolveLines(items []dto.CartItemRequest, settings *entity.AppSettings) ([]resolvedLine, error) {
	lines := make([]resolvedLine, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}

		switch {
		case it.RepairJobID != "":
			job, err := uc.repairRepo.GetByID(it.RepairJobID)
			if err != nil {
				return nil, err
			}
			if job == nil {
				return nil, fmt.Errorf("reparación %s: %w", it.RepairJobID, domain.ErrNotFound)
			}
			price := job.Balance()
			if it.UnitPrice != nil && it.UnitPrice.IsPositive() {
				price = *it.UnitPrice
			}
			name := it.Name
			if name == "" {
				name = fmt.Sprintf("Reparación %s %s", job.DeviceBrand, job.DeviceModel)
			}
			lines = append(lines, resolvedLine{item: entity.CartItem{
				Name:        name,
				UnitPrice:   price,
				Quantity:    1,
				IsRepair:    true,
				RepairJobID: job.ID,
			}})

		case it.ProductID == "":
			// Línea custom: nunca en inventario; precio del cliente.
			if it.Name == "" {
				return nil, domain.ErrInvalidInput
			}
			price := decimal.Zero
			if it.UnitPrice != nil {
				if it.UnitPrice.IsNegative() {
					return nil, domain.ErrInvalidInput
				}
				price = *it.UnitPrice
			}
			lines = append(lines, resolvedLine{item: entity.CartItem{
				Name:      it.Name,
				UnitPrice: price,
				Quantity:  it.Quantity,
				IsCustom:  true,
				IsGift:    it.IsGift,
			}})

		default:
			product, err := uc.productRepo.GetByID(it.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
			}
			price := pricing.Retail(product, settings)
			isGift := it.IsGift && product.IsGiftable
			if isGift {
				price = decimal.Zero
			}
			lines = append(lines, resolvedLine{item: entity.CartItem{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: price,
				Quantity:  it.Quantity,
				IsPromo:   product.PromoPrice != nil && product.PromoPrice.IsPositive(),
				IsGift:    isGift,
			}})
		}
	}
	return lines, nil
}

// settleChange valida que lo pagado cubra el total (en USD equivalente a la
// tasa BCV) y calcula el vuelto. El vuelto solo se materializa reduciendo el
// pago en efectivo USD registrado; no se sintetiza un vuelto en otras
// monedas. Limitación conocida del diseño original, preservada.
func settleChange(in []dto.PaymentRequest, total, bcvRate decimal.Decimal) ([]entity.Payment, decimal.Decimal, error) {
	payments := make([]entity.Payment, 0, len(in))
	tenderedUSD := decimal.Zero
	for _, p := range in {
		currency := entity.PaymentMethodCurrency[p.Method]
		payments = append(payments, entity.Payment{
			Method:    p.Method,
			Amount:    p.Amount,
			Currency:  currency,
			Reference: p.Reference,
		})
		tenderedUSD = tenderedUSD.Add(pricing.Convert(p.Amount, currency, entity.CurrencyUSD, bcvRate))
	}

	if tenderedUSD.Round(2).LessThan(total.Round(2)) {
		return nil, decimal.Zero, domain.ErrInsufficientPay
	}

	change := tenderedUSD.Sub(total).Round(2)
	if !change.IsPositive() {
		return payments, decimal.Zero, nil
	}
	for i := range payments {
		if payments[i].Method != entity.PaymentCashUSD {
			continue
		}
		reduction := change
		if payments[i].Amount.LessThan(reduction) {
			reduction = payments[i].Amount
		}
		payments[i].Amount = payments[i].Amount.Sub(reduction)
		break
	}
	return payments, change, nil
}

// consumeRepair pasa los repuestos reservados de la orden a consumidos
// (descuenta ReservedStock y StockLevel a la vez), cobra el abono de la
// línea y completa la orden. Devuelve el snapshot de repuestos consumidos
// que la venta persiste para un eventual reembolso.
func consumeRepair(
	productRepo repository.ProductRepository,
	repairRepo repository.RepairJobRepository,
	line *resolvedLine,
	now time.Time,
) ([]entity.ReservedPart, error) {
	job, err := repairRepo.GetForUpdate(line.item.RepairJobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("reparación %s: %w", line.item.RepairJobID, domain.ErrNotFound)
	}

	consumed := make([]entity.ReservedPart, 0, len(job.ReservedParts))
	for _, part := range job.ReservedParts {
		p, err := productRepo.GetForUpdate(part.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("repuesto %s (%s): %w", part.ProductID, part.ProductName, domain.ErrNotFound)
		}
		reserved := clampZero(p.ReservedStock - part.Quantity)
		stock := clampZero(p.StockLevel - part.Quantity)
		if err := productRepo.UpdateStocks(p.ID, stock, reserved, p.DamagedStock); err != nil {
			return nil, err
		}
		consumed = append(consumed, part)
	}

	job.AmountPaid = job.AmountPaid.Add(line.item.UnitPrice)
	job.IsPaid = job.AmountPaid.GreaterThanOrEqual(job.EstimatedCost)
	job.Complete(now)
	if err := repairRepo.Update(job); err != nil {
		return nil, err
	}
	return consumed, nil
}

// decrementStock descuenta stock de una línea de inventario: un combo
// descuenta cada componente por cantidadComponente*cantidadVendida; un
// producto simple descuenta su propia fila. El stock nunca baja de cero
// (clamp), pero tampoco bloquea la venta: la sobreventa lógica es visible
// en el inventario, no un error.
func decrementStock(productRepo repository.ProductRepository, productID string, qty int, now time.Time) error {
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
			stock := clampZero(cp.StockLevel - comp.Quantity*qty)
			if err := productRepo.UpdateStocks(cp.ID, stock, cp.ReservedStock, cp.DamagedStock); err != nil {
				return err
			}
		}
		return nil
	}

	stock := clampZero(product.StockLevel - qty)
	return productRepo.UpdateStocks(product.ID, stock, product.ReservedStock, product.DamagedStock)
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// ToSaleResponse arma la respuesta de una venta con el total también en Bs
// a la tasa BCV vigente.
func ToSaleResponse(s *entity.Sale, bcvRate decimal.Decimal) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:               s.ID,
		Subtotal:         s.Subtotal,
		Discount:         s.Discount,
		TotalAmount:      s.TotalAmount,
		TotalAmountBs:    pricing.Convert(s.TotalAmount, entity.CurrencyUSD, entity.CurrencyVES, bcvRate).Round(2),
		ChangeGiven:      s.ChangeGiven,
		Status:           s.Status,
		ReconciliationID: s.ReconciliationID,
		RefundReason:     s.RefundReason,
		RefundedAt:       s.RefundedAt,
		CreatedAt:        s.CreatedAt,
		CreatedBy:        s.CreatedBy,
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			Name:        it.Name,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal(),
			IsRepair:    it.IsRepair,
			IsPromo:     it.IsPromo,
			IsGift:      it.IsGift,
			IsCustom:    it.IsCustom,
			RepairJobID: it.RepairJobID,
		})
	}
	for _, p := range s.Payments {
		resp.Payments = append(resp.Payments, dto.SalePaymentResponse{
			Method:    p.Method,
			Amount:    p.Amount,
			Currency:  p.Currency,
			Reference: p.Reference,
		})
	}
	return resp
}
