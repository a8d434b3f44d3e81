package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/application/usecase"
	"github.com/multimovil/pos-api/internal/domain"
	"github.com/multimovil/pos-api/internal/domain/entity"
)

func newProductEnv(products ...*entity.Product) (*usecase.ProductUseCase, *fakeProductRepo) {
	repo := newFakeProductRepo(products...)
	uc := usecase.NewProductUseCase(repo, newFakeSettingsRepo(testSettings()))
	return uc, repo
}

func TestCrearProducto_CalculaPrecioDeVenta(t *testing.T) {
	uc, _ := newProductEnv()

	// costo 10 × paralela 50 × 1.30 / BCV 40 = 16.25
	resp, err := uc.Create(dto.CreateProductRequest{
		Name:      "Pantalla A12",
		SKU:       "PAN-A12",
		CostPrice: dec("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "16.25", resp.RetailPriceUSD.String(),
		"el precio debe salir del costo de reposición más el margen global")
	assert.Equal(t, "650", resp.RetailPriceBs.String(),
		"el precio en Bs usa solo la tasa BCV")
}

func TestCrearProducto_NormalizaElSKU(t *testing.T) {
	uc, repo := newProductEnv()

	resp, err := uc.Create(dto.CreateProductRequest{
		Name:      "Pantalla Águila",
		SKU:       "  pantalla águila 12 ",
		CostPrice: dec("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "PANTALLA-AGUILA-12", resp.SKU,
		"el SKU se guarda sin acentos, en mayúsculas y con guiones")

	// La variante con otra grafía es el mismo SKU y debe rechazarse.
	_, err = uc.Create(dto.CreateProductRequest{
		Name:      "Pantalla Aguila",
		SKU:       "PANTALLA-AGUILA-12",
		CostPrice: dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	stored, err := repo.GetBySKU("PANTALLA-AGUILA-12")
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestCrearCombo_SinStockPropio(t *testing.T) {
	componente := &entity.Product{ID: "P1", Name: "Forro", SKU: "FOR-1", CostPrice: dec("2"), StockLevel: 10}
	uc, _ := newProductEnv(componente)

	resp, err := uc.Create(dto.CreateProductRequest{
		Name:       "Combo forro x2",
		SKU:        "CMB-1",
		IsCombo:    true,
		StockLevel: 99, // se ignora: el stock de un combo es el de sus componentes
		ComboItems: []dto.ComboItemDTO{{ProductID: "P1", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Zero(t, resp.StockLevel, "un combo no lleva stock propio")
}

func TestCrearCombo_RechazaComboAnidado(t *testing.T) {
	inner := &entity.Product{ID: "C1", Name: "Combo interno", SKU: "CMB-IN", IsCombo: true}
	uc, _ := newProductEnv(inner)

	_, err := uc.Create(dto.CreateProductRequest{
		Name:       "Combo de combos",
		SKU:        "CMB-OUT",
		IsCombo:    true,
		ComboItems: []dto.ComboItemDTO{{ProductID: "C1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"un combo no puede contener otro combo")
}

func TestActualizarProducto_NoTocaStockDeCombo(t *testing.T) {
	combo := &entity.Product{ID: "C1", Name: "Combo", SKU: "CMB-1", IsCombo: true}
	uc, _ := newProductEnv(combo)

	nuevo := 5
	_, err := uc.Update("C1", dto.UpdateProductRequest{StockLevel: &nuevo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEliminarProducto_ConRepuestosApartadosSeRechaza(t *testing.T) {
	p := &entity.Product{ID: "P1", Name: "Batería", SKU: "BAT-1", StockLevel: 5, ReservedStock: 2}
	uc, repo := newProductEnv(p)

	err := uc.Delete("P1")
	assert.ErrorIs(t, err, domain.ErrConflict,
		"con unidades apartadas por reparaciones no se puede borrar")

	still, _ := repo.GetByID("P1")
	assert.NotNil(t, still)
}

func TestPromoYMargenPropio_MandanSobreElGlobal(t *testing.T) {
	uc, _ := newProductEnv()

	margen := dec("100")
	resp, err := uc.Create(dto.CreateProductRequest{
		Name:         "Cargador",
		SKU:          "CAR-1",
		CostPrice:    dec("10"),
		ProfitMargin: &margen,
	})
	require.NoError(t, err)
	// costo 10 × 50 × 2.00 / 40 = 25
	assert.Equal(t, "25", resp.RetailPriceUSD.String())

	promo := dec("9.99")
	resp2, err := uc.Create(dto.CreateProductRequest{
		Name:       "Cable",
		SKU:        "CAB-1",
		CostPrice:  dec("10"),
		PromoPrice: &promo,
	})
	require.NoError(t, err)
	assert.Equal(t, "9.99", resp2.RetailPriceUSD.String(),
		"el precio promocional manda sobre el cálculo")
}
