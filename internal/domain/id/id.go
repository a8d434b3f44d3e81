// Package id genera los identificadores legibles de la tienda.
// Los IDs se generan en el cliente (no los asigna la base de datos) con un
// prefijo humano, la fecha y un sufijo aleatorio: S-aammdd-NNNN para ventas,
// R-aammdd-NNNN para reparaciones, P-NNNNNN para productos. El ID de arqueo
// es determinista por fecha (RECON-aaaa-mm-dd) a propósito: la colisión del
// insert es la guarda contra un doble cierre.
package id

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	salePrefix    = "S"
	repairPrefix  = "R"
	productPrefix = "P"
	reconPrefix   = "RECON"
)

// NewSale genera un ID de venta: S-aammdd-NNNN.
func NewSale(t time.Time) string {
	return fmt.Sprintf("%s-%s-%04d", salePrefix, t.Format("060102"), rand.Intn(10000))
}

// NewRepair genera un ID de orden de reparación: R-aammdd-NNNN.
func NewRepair(t time.Time) string {
	return fmt.Sprintf("%s-%s-%04d", repairPrefix, t.Format("060102"), rand.Intn(10000))
}

// NewProduct genera un ID de producto: P-NNNNNN.
func NewProduct() string {
	return fmt.Sprintf("%s-%06d", productPrefix, rand.Intn(1000000))
}

// Reconciliation devuelve el ID determinista del cierre del día: RECON-aaaa-mm-dd.
func Reconciliation(t time.Time) string {
	return fmt.Sprintf("%s-%s", reconPrefix, t.Format("2006-01-02"))
}
