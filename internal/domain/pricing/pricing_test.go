package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multimovil/pos-api/internal/domain/entity"
	"github.com/multimovil/pos-api/internal/domain/pricing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vector de referencia del precio sugerido:
//
//	costo 10 USD, paralela 50 Bs/USD, margen 30%, BCV 40 Bs/USD
//	= (10 * 50) * 1.30 / 40 = 650 / 40 = 16.25 USD
//
// Si alguien toca la fórmula (orden de tasas, margen en USD en vez de Bs),
// este test lo detecta de inmediato.
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestSuggested_VectorExacto(t *testing.T) {
	got := pricing.Suggested(d("10"), d("50"), d("30"), d("40"))
	assert.True(t, d("16.25").Equal(got),
		"precio sugerido debe ser 16.25, obtuvo %s", got)
}

func TestSuggested_RedondeaADosDecimales(t *testing.T) {
	// (7 * 53) * 1.27 / 41 = 11.4926...
	got := pricing.Suggested(d("7"), d("53"), d("27"), d("41"))
	assert.True(t, got.Equal(got.Round(2)), "el precio no debe tener más de 2 decimales")
}

func TestSuggested_CostoNoPositivo_PrecioCero(t *testing.T) {
	assert.True(t, pricing.Suggested(decimal.Zero, d("50"), d("30"), d("40")).IsZero())
	assert.True(t, pricing.Suggested(d("-5"), d("50"), d("30"), d("40")).IsZero())
}

func TestSuggested_TasasNoPositivas_PrecioCero(t *testing.T) {
	assert.True(t, pricing.Suggested(d("10"), decimal.Zero, d("30"), d("40")).IsZero())
	assert.True(t, pricing.Suggested(d("10"), d("50"), d("30"), decimal.Zero).IsZero())
}

func TestSuggested_NuncaNegativo(t *testing.T) {
	got := pricing.Suggested(d("10"), d("50"), d("-80"), d("40"))
	assert.False(t, got.IsNegative(), "margen negativo no debe producir precio negativo")
}

// Monotonía: creciente en costo, paralela y margen; decreciente en BCV.
func TestSuggested_Monotonia(t *testing.T) {
	base := pricing.Suggested(d("10"), d("50"), d("30"), d("40"))

	assert.True(t, pricing.Suggested(d("11"), d("50"), d("30"), d("40")).GreaterThan(base),
		"mayor costo ⇒ mayor precio")
	assert.True(t, pricing.Suggested(d("10"), d("55"), d("30"), d("40")).GreaterThan(base),
		"mayor tasa paralela ⇒ mayor precio")
	assert.True(t, pricing.Suggested(d("10"), d("50"), d("35"), d("40")).GreaterThan(base),
		"mayor margen ⇒ mayor precio")
	assert.True(t, pricing.Suggested(d("10"), d("50"), d("30"), d("45")).LessThan(base),
		"mayor tasa BCV ⇒ menor precio")
}

// ──────────────────────────────────────────────────────────────────────────────
// Retail: precedencia de overrides
// ──────────────────────────────────────────────────────────────────────────────

func settings() *entity.AppSettings {
	return &entity.AppSettings{
		ID:           entity.SettingsID,
		BCVRate:      d("40"),
		ParallelRate: d("50"),
		ProfitMargin: d("30"),
	}
}

func TestRetail_PromoPriceManda(t *testing.T) {
	promo := d("9.99")
	margin := d("80")
	p := &entity.Product{CostPrice: d("10"), PromoPrice: &promo, ProfitMargin: &margin}

	got := pricing.Retail(p, settings())
	assert.True(t, promo.Equal(got), "el precio promocional debe ganar a cualquier cálculo")
}

func TestRetail_PrecioFijo_VendeAlCosto(t *testing.T) {
	p := &entity.Product{CostPrice: d("3.50"), IsFixedPrice: true}
	got := pricing.Retail(p, settings())
	assert.True(t, d("3.50").Equal(got))
}

func TestRetail_MargenIndividualReemplazaGlobal(t *testing.T) {
	margin := d("10")
	p := &entity.Product{CostPrice: d("10"), ProfitMargin: &margin}

	// (10*50)*1.10/40 = 13.75
	got := pricing.Retail(p, settings())
	assert.True(t, d("13.75").Equal(got))
}

func TestRetail_SinOverrides_UsaMargenGlobal(t *testing.T) {
	p := &entity.Product{CostPrice: d("10")}
	got := pricing.Retail(p, settings())
	assert.True(t, d("16.25").Equal(got))
}

// ──────────────────────────────────────────────────────────────────────────────
// Convert: solo tasa BCV, ida y vuelta estable
// ──────────────────────────────────────────────────────────────────────────────

func TestConvert_UsaSoloTasaBCV(t *testing.T) {
	bs := pricing.Convert(d("10"), entity.CurrencyUSD, entity.CurrencyVES, d("40"))
	assert.True(t, d("400").Equal(bs), "10 USD a 40 Bs/USD deben ser 400 Bs")
}

func TestConvert_MismaMoneda_Identidad(t *testing.T) {
	v := d("123.45")
	assert.True(t, v.Equal(pricing.Convert(v, entity.CurrencyUSD, entity.CurrencyUSD, d("40"))))
}

func TestConvert_TasaNoPositiva_Cero(t *testing.T) {
	assert.True(t, pricing.Convert(d("10"), entity.CurrencyUSD, entity.CurrencyVES, decimal.Zero).IsZero())
}

func TestConvert_RoundTrip(t *testing.T) {
	casos := []string{"1", "0.01", "99.99", "1234.56", "7.77"}
	rate := d("36.58")
	for _, c := range casos {
		v := d(c)
		bs := pricing.Convert(v, entity.CurrencyUSD, entity.CurrencyVES, rate)
		back := pricing.Convert(bs, entity.CurrencyVES, entity.CurrencyUSD, rate)

		diff := back.Sub(v).Abs()
		require.True(t, diff.LessThan(d("0.0000001")),
			"round-trip de %s se desvió en %s", c, diff)
	}
}
