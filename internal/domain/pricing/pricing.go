// Package pricing implementa el motor de precios de la tienda (servicio de
// dominio, funciones puras).
//
// La regla de la casa: el costo USD se infla primero a su costo de
// reposición en bolívares a la tasa paralela (lo que de verdad cuesta
// reponer el producto), se aplica el margen en bolívares y el resultado se
// reconvierte a USD a la tasa oficial BCV, que es la que ve el cliente.
//
//	precio = round2( (costo * tasaParalela) * (1 + margen/100) / tasaBCV )
//
// La conversión USD↔Bs de cara al cliente usa SIEMPRE la tasa BCV; la
// paralela solo participa en la base de costo.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/multimovil/pos-api/internal/domain/entity"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Suggested calcula el precio de venta sugerido en USD.
// Costo o tasas no positivas producen precio 0; nunca retorna negativo.
func Suggested(costPrice, parallelRate, profitMargin, bcvRate decimal.Decimal) decimal.Decimal {
	if !costPrice.IsPositive() || !parallelRate.IsPositive() || !bcvRate.IsPositive() {
		return decimal.Zero
	}
	if profitMargin.IsNegative() {
		profitMargin = decimal.Zero
	}
	replacementBs := costPrice.Mul(parallelRate)
	withMargin := replacementBs.Mul(one.Add(profitMargin.Div(hundred)))
	return withMargin.Div(bcvRate).Round(2)
}

// Retail resuelve el precio de venta efectivo de un producto:
// PromoPrice manda sobre todo; un producto de precio fijo se vende a su
// costo tal cual; un margen individual reemplaza al global.
func Retail(p *entity.Product, s *entity.AppSettings) decimal.Decimal {
	if p.PromoPrice != nil && p.PromoPrice.IsPositive() {
		return p.PromoPrice.Round(2)
	}
	if p.IsFixedPrice {
		if p.CostPrice.IsNegative() {
			return decimal.Zero
		}
		return p.CostPrice.Round(2)
	}
	margin := s.ProfitMargin
	if p.ProfitMargin != nil {
		margin = *p.ProfitMargin
	}
	return Suggested(p.CostPrice, s.ParallelRate, margin, s.BCVRate)
}

// Convert convierte un monto entre USD y Bs escalando linealmente por la
// tasa BCV. Es la única conversión usada para mostrar y cobrar; no redondea
// para que el round-trip sea exacto salvo el error de la división.
func Convert(value decimal.Decimal, from, to string, bcvRate decimal.Decimal) decimal.Decimal {
	if from == to {
		return value
	}
	if !bcvRate.IsPositive() {
		return decimal.Zero
	}
	switch {
	case from == entity.CurrencyUSD && to == entity.CurrencyVES:
		return value.Mul(bcvRate)
	case from == entity.CurrencyVES && to == entity.CurrencyUSD:
		return value.Div(bcvRate)
	default:
		return decimal.Zero
	}
}
