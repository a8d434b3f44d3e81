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

// closeDayMethods fija el orden de las filas del arqueo.
var closeDayMethods = []string{
	entity.PaymentCashUSD,
	entity.PaymentZelle,
	entity.PaymentCashBs,
	entity.PaymentPagoMovil,
	entity.PaymentCard,
}

// CloseDayUseCase ejecuta el cierre de caja del día: suma lo esperado por
// método de pago sobre las ventas abiertas, lo contrasta con el conteo del
// operador y estampa cada venta con el ID del arqueo, todo en una sola
// transacción. El ID determinista por fecha hace que un segundo cierre del
// mismo día colisione en el insert.
type CloseDayUseCase struct {
	txRunner     TxRunner
	settingsRepo repository.SettingsRepository
	reconRepo    repository.ReconciliationRepository
}

// NewCloseDayUseCase construye el caso de uso.
func NewCloseDayUseCase(txRunner TxRunner, settingsRepo repository.SettingsRepository, reconRepo repository.ReconciliationRepository) *CloseDayUseCase {
	return &CloseDayUseCase{txRunner: txRunner, settingsRepo: settingsRepo, reconRepo: reconRepo}
}

// CloseDay cierra el día con los montos contados por método (en la moneda
// nativa de cada método). Montos negativos se rechazan antes de abrir la
// transacción. La diferencia total se expresa en USD convirtiendo los
// métodos en Bs a la tasa BCV.
func (uc *CloseDayUseCase) CloseDay(ctx context.Context, userID string, in dto.CloseDayRequest) (*dto.ReconciliationResponse, error) {
	for method, amount := range in.Counted {
		if _, ok := entity.PaymentMethodCurrency[method]; !ok {
			return nil, fmt.Errorf("método de pago %q: %w", method, domain.ErrInvalidInput)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("monto contado de %s: %w", method, domain.ErrInvalidInput)
		}
	}

	settings, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	bcv := settings.BCVRate

	now := time.Now()
	var recon *entity.DailyReconciliation

	err = uc.txRunner.RunCloseDay(ctx, func(
		saleRepo repository.SaleRepository,
		reconRepo repository.ReconciliationRepository,
	) error {
		open, err := saleRepo.ListOpenByDay(now)
		if err != nil {
			return err
		}

		expected := make(map[string]decimal.Decimal, len(closeDayMethods))
		for _, s := range open {
			for _, p := range s.Payments {
				expected[p.Method] = expected[p.Method].Add(p.Amount)
			}
		}

		rows := make([]entity.ReconciliationRow, 0, len(closeDayMethods))
		totalExpectedUSD := decimal.Zero
		totalCountedUSD := decimal.Zero
		for _, method := range closeDayMethods {
			exp := expected[method]
			counted := in.Counted[method]
			rows = append(rows, entity.ReconciliationRow{
				Method:     method,
				Expected:   exp,
				Counted:    counted,
				Difference: counted.Sub(exp),
			})
			currency := entity.PaymentMethodCurrency[method]
			totalExpectedUSD = totalExpectedUSD.Add(pricing.Convert(exp, currency, entity.CurrencyUSD, bcv))
			totalCountedUSD = totalCountedUSD.Add(pricing.Convert(counted, currency, entity.CurrencyUSD, bcv))
		}

		recon = &entity.DailyReconciliation{
			ID:               id.Reconciliation(now),
			Date:             now,
			Rows:             rows,
			TotalExpectedUSD: totalExpectedUSD.Round(2),
			TotalCountedUSD:  totalCountedUSD.Round(2),
			TotalDifference:  totalCountedUSD.Sub(totalExpectedUSD).Round(2),
			SalesCount:       len(open),
			ClosedBy:         userID,
			CreatedAt:        now,
		}
		if err := reconRepo.Create(recon); err != nil {
			if err == domain.ErrDuplicate {
				return domain.ErrDayAlreadyClosed
			}
			return err
		}

		for _, s := range open {
			if err := saleRepo.SetReconciliation(s.ID, recon.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toReconciliationResponse(recon), nil
}

// Get devuelve un cierre por ID.
func (uc *CloseDayUseCase) Get(ctx context.Context, reconID string) (*dto.ReconciliationResponse, error) {
	recon, err := uc.reconRepo.GetByID(reconID)
	if err != nil {
		return nil, err
	}
	if recon == nil {
		return nil, nil
	}
	return toReconciliationResponse(recon), nil
}

// List devuelve los cierres más recientes.
func (uc *CloseDayUseCase) List(ctx context.Context, limit, offset int) (*dto.ReconciliationListResponse, error) {
	list, err := uc.reconRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReconciliationResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReconciliationResponse(r))
	}
	return &dto.ReconciliationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toReconciliationResponse(r *entity.DailyReconciliation) *dto.ReconciliationResponse {
	resp := &dto.ReconciliationResponse{
		ID:               r.ID,
		Date:             r.Date.Format("2006-01-02"),
		TotalExpectedUSD: r.TotalExpectedUSD,
		TotalCountedUSD:  r.TotalCountedUSD,
		TotalDifference:  r.TotalDifference,
		SalesCount:       r.SalesCount,
		ClosedBy:         r.ClosedBy,
		CreatedAt:        r.CreatedAt,
	}
	for _, row := range r.Rows {
		resp.Rows = append(resp.Rows, dto.ReconciliationRowResponse{
			Method:     row.Method,
			Expected:   row.Expected,
			Counted:    row.Counted,
			Difference: row.Difference,
		})
	}
	return resp
}
