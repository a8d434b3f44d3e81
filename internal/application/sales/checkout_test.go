package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/application/sales"
	"github.com/multimovil/pos-api/internal/domain"
	"github.com/multimovil/pos-api/internal/domain/entity"
)

// Con la configuración de prueba (paralelo 50, margen 30%, BCV 40) un
// producto de costo 10 USD vende a 10*50*1.30/40 = 16.25 USD.

func producto(id string, stock int) *entity.Product {
	return &entity.Product{
		ID:                id,
		Name:              "Producto " + id,
		CostPrice:         decimal.NewFromInt(10),
		StockLevel:        stock,
		LowStockThreshold: 2,
	}
}

func newCheckoutEnv(products []*entity.Product, jobs []*entity.RepairJob) (*sales.CheckoutUseCase, *fakeProductRepo, *fakeRepairRepo, *fakeSaleRepo) {
	productRepo := newFakeProductRepo(products...)
	repairRepo := newFakeRepairRepo(jobs...)
	saleRepo := newFakeSaleRepo()
	tx := &fakeTxRunner{products: productRepo, repairs: repairRepo, sales: saleRepo, recons: newFakeReconRepo()}
	uc := sales.NewCheckoutUseCase(tx, productRepo, repairRepo, saleRepo, newFakeSettingsRepo(testSettings()))
	return uc, productRepo, repairRepo, saleRepo
}

func TestCheckout_VentaSimpleConVuelto(t *testing.T) {
	uc, productRepo, _, saleRepo := newCheckoutEnv([]*entity.Product{producto("P-1", 10)}, nil)

	resp, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items:    []dto.CartItemRequest{{ProductID: "P-1", Quantity: 1}},
		Payments: []dto.PaymentRequest{{Method: entity.PaymentCashUSD, Amount: dec("20")}},
	})
	require.NoError(t, err, "una venta válida no debe fallar")
	require.NotNil(t, resp)

	assert.True(t, resp.TotalAmount.Equal(dec("16.25")), "el precio debe salir del motor de precios: got %s", resp.TotalAmount)
	assert.True(t, resp.ChangeGiven.Equal(dec("3.75")), "el vuelto debe ser tendered-total: got %s", resp.ChangeGiven)
	assert.True(t, resp.TotalAmountBs.Equal(dec("650")), "el total en Bs debe usar solo la tasa BCV: got %s", resp.TotalAmountBs)

	// El vuelto se materializa reduciendo el pago en efectivo USD registrado.
	require.Len(t, resp.Payments, 1)
	assert.True(t, resp.Payments[0].Amount.Equal(dec("16.25")), "el pago registrado debe quedar neto de vuelto: got %s", resp.Payments[0].Amount)

	p, _ := productRepo.GetByID("P-1")
	assert.Equal(t, 9, p.StockLevel, "el stock debe descontarse en 1")

	persisted, _ := saleRepo.GetByID(resp.ID)
	require.NotNil(t, persisted, "la venta debe quedar persistida")
	assert.Equal(t, entity.SaleStatusCompleted, persisted.Status)
}

func TestCheckout_ComboDescuentaComponentes(t *testing.T) {
	compA := producto("P-A", 10)
	compB := producto("P-B", 10)
	combo := &entity.Product{
		ID:        "P-COMBO",
		Name:      "Combo pantalla + mica",
		CostPrice: decimal.NewFromInt(10),
		IsCombo:   true,
		ComboItems: []entity.ComboItem{
			{ProductID: "P-A", Quantity: 2},
			{ProductID: "P-B", Quantity: 1},
		},
	}
	uc, productRepo, _, _ := newCheckoutEnv([]*entity.Product{compA, compB, combo}, nil)

	_, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items:    []dto.CartItemRequest{{ProductID: "P-COMBO", Quantity: 2}},
		Payments: []dto.PaymentRequest{{Method: entity.PaymentZelle, Amount: dec("32.50")}},
	})
	require.NoError(t, err)

	a, _ := productRepo.GetByID("P-A")
	b, _ := productRepo.GetByID("P-B")
	c, _ := productRepo.GetByID("P-COMBO")
	assert.Equal(t, 6, a.StockLevel, "componente A: 2 por combo x 2 combos = -4")
	assert.Equal(t, 8, b.StockLevel, "componente B: 1 por combo x 2 combos = -2")
	assert.Equal(t, 0, c.StockLevel, "el combo en sí no lleva stock propio")
}

func TestCheckout_StockNuncaNegativo(t *testing.T) {
	uc, productRepo, _, _ := newCheckoutEnv([]*entity.Product{producto("P-1", 1)}, nil)

	resp, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items:    []dto.CartItemRequest{{ProductID: "P-1", Quantity: 3}},
		Payments: []dto.PaymentRequest{{Method: entity.PaymentCashUSD, Amount: dec("48.75")}},
	})
	require.NoError(t, err, "la sobreventa no bloquea el cobro")
	require.NotNil(t, resp)

	p, _ := productRepo.GetByID("P-1")
	assert.Equal(t, 0, p.StockLevel, "el stock se clava en cero, nunca negativo")
}

func TestCheckout_ProductoInexistenteAbortaTodo(t *testing.T) {
	combo := &entity.Product{
		ID:         "P-COMBO",
		Name:       "Combo roto",
		CostPrice:  decimal.NewFromInt(10),
		IsCombo:    true,
		ComboItems: []entity.ComboItem{{ProductID: "P-FANTASMA", Quantity: 1}},
	}
	bueno := producto("P-1", 10)
	uc, productRepo, _, saleRepo := newCheckoutEnv([]*entity.Product{bueno, combo}, nil)

	_, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items: []dto.CartItemRequest{
			{ProductID: "P-1", Quantity: 2},
			{ProductID: "P-COMBO", Quantity: 1},
		},
		Payments: []dto.PaymentRequest{{Method: entity.PaymentCashUSD, Amount: dec("100")}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound, "un componente inexistente debe abortar el cobro")

	p, _ := productRepo.GetByID("P-1")
	assert.Equal(t, 10, p.StockLevel, "la transacción abortada no debe dejar descuentos parciales")
	assert.Empty(t, saleRepo.order, "no debe registrarse venta alguna")
}

func TestCheckout_ReparacionConsumeRepuestosYCompleta(t *testing.T) {
	repuesto := &entity.Product{
		ID:            "P-PANT",
		Name:          "Pantalla iPhone 12",
		CostPrice:     decimal.NewFromInt(10),
		StockLevel:    5,
		ReservedStock: 2,
	}
	job := &entity.RepairJob{
		ID:            "R-1",
		CustomerName:  "María",
		DeviceBrand:   "Apple",
		DeviceModel:   "iPhone 12",
		Status:        entity.RepairStatusListo,
		EstimatedCost: dec("30"),
		AmountPaid:    dec("10"),
		ReservedParts: []entity.ReservedPart{
			{ProductID: "P-PANT", ProductName: "Pantalla iPhone 12", Quantity: 1},
		},
	}
	uc, productRepo, repairRepo, saleRepo := newCheckoutEnv([]*entity.Product{repuesto}, []*entity.RepairJob{job})

	resp, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items:    []dto.CartItemRequest{{RepairJobID: "R-1", Quantity: 1}},
		Payments: []dto.PaymentRequest{{Method: entity.PaymentCashUSD, Amount: dec("20")}},
	})
	require.NoError(t, err)

	assert.True(t, resp.TotalAmount.Equal(dec("20")), "sin precio explícito se cobra el saldo pendiente: got %s", resp.TotalAmount)

	p, _ := productRepo.GetByID("P-PANT")
	assert.Equal(t, 4, p.StockLevel, "consumir un repuesto descuenta StockLevel")
	assert.Equal(t, 1, p.ReservedStock, "y descuenta ReservedStock a la vez")

	j, _ := repairRepo.GetByID("R-1")
	assert.Equal(t, entity.RepairStatusCompletado, j.Status)
	assert.True(t, j.IsPaid, "10 abonados + 20 cobrados cubren los 30 estimados")
	require.NotNil(t, j.CompletedAt)
	require.NotNil(t, j.WarrantyEndsAt)
	assert.Equal(t, j.CompletedAt.AddDate(0, 0, entity.WarrantyDays), *j.WarrantyEndsAt, "la garantía corre desde la fecha de completado")

	persisted, _ := saleRepo.GetByID(resp.ID)
	require.NotNil(t, persisted)
	require.Len(t, persisted.ConsumedParts, 1, "la venta persiste el snapshot de repuestos consumidos")
	assert.Equal(t, "P-PANT", persisted.ConsumedParts[0].ProductID)
}

func TestCheckout_PagoInsuficiente(t *testing.T) {
	uc, productRepo, _, _ := newCheckoutEnv([]*entity.Product{producto("P-1", 10)}, nil)

	_, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items:    []dto.CartItemRequest{{ProductID: "P-1", Quantity: 1}},
		Payments: []dto.PaymentRequest{{Method: entity.PaymentCashUSD, Amount: dec("10")}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientPay)

	p, _ := productRepo.GetByID("P-1")
	assert.Equal(t, 10, p.StockLevel, "un pago insuficiente no debe tocar el inventario")
}

func TestCheckout_PagoEnBolivaresALaTasaBCV(t *testing.T) {
	uc, _, _, _ := newCheckoutEnv([]*entity.Product{producto("P-1", 10)}, nil)

	// 650 Bs a tasa BCV 40 equivalen exactamente a los 16.25 USD del total.
	resp, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items:    []dto.CartItemRequest{{ProductID: "P-1", Quantity: 1}},
		Payments: []dto.PaymentRequest{{Method: entity.PaymentCashBs, Amount: dec("650")}},
	})
	require.NoError(t, err)
	assert.True(t, resp.ChangeGiven.IsZero(), "pago exacto no genera vuelto: got %s", resp.ChangeGiven)
	require.Len(t, resp.Payments, 1)
	assert.Equal(t, entity.CurrencyVES, resp.Payments[0].Currency, "la moneda del pago la fija el método")
}

func TestCheckout_RegaloSoloSiElProductoLoPermite(t *testing.T) {
	giftable := producto("P-G", 10)
	giftable.IsGiftable = true
	normal := producto("P-N", 10)
	uc, _, _, _ := newCheckoutEnv([]*entity.Product{giftable, normal}, nil)

	resp, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items: []dto.CartItemRequest{
			{ProductID: "P-G", Quantity: 1, IsGift: true},
			{ProductID: "P-N", Quantity: 1, IsGift: true},
		},
		Payments: []dto.PaymentRequest{{Method: entity.PaymentCashUSD, Amount: dec("16.25")}},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].UnitPrice.IsZero(), "un producto regalable marcado regalo va en cero")
	assert.True(t, resp.Items[0].IsGift)
	assert.True(t, resp.Items[1].UnitPrice.Equal(dec("16.25")), "un producto no regalable ignora la marca de regalo")
	assert.False(t, resp.Items[1].IsGift)
}

func TestCheckout_CarritoVacioRechazado(t *testing.T) {
	uc, _, _, _ := newCheckoutEnv(nil, nil)

	_, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Payments: []dto.PaymentRequest{{Method: entity.PaymentCashUSD, Amount: dec("10")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckout_DescuentoNuncaDejaTotalNegativo(t *testing.T) {
	uc, _, _, _ := newCheckoutEnv([]*entity.Product{producto("P-1", 10)}, nil)

	resp, err := uc.Checkout(context.Background(), "user-1", dto.CheckoutRequest{
		Items:    []dto.CartItemRequest{{ProductID: "P-1", Quantity: 1}},
		Discount: dec("100"),
		Payments: []dto.PaymentRequest{{Method: entity.PaymentCashUSD, Amount: dec("0")}},
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.IsZero(), "el descuento se clava en el subtotal: got %s", resp.TotalAmount)
}
