package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una reparación. Solo se permiten transiciones
// hacia adelante; Completado es terminal y se alcanza al cobrar la reparación.
const (
	RepairStatusPendiente    = "Pendiente"
	RepairStatusEnRevision   = "En Revisión"
	RepairStatusEnReparacion = "En Reparación"
	RepairStatusListo        = "Listo"
	RepairStatusCompletado   = "Completado"
)

// WarrantyDays es la garantía que se otorga al completar una reparación.
const WarrantyDays = 4

// ReservedPart es un repuesto apartado para una reparación. Mientras la
// reparación está abierta incrementa Product.ReservedStock; al cobrarla se
// consume (descuenta ReservedStock y StockLevel a la vez).
type ReservedPart struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// RepairJob representa una orden de reparación de un equipo.
type RepairJob struct {
	ID             string
	CustomerName   string
	CustomerPhone  string
	DeviceBrand    string
	DeviceModel    string
	DeviceIMEI     string
	ReportedIssue  string
	Status         string
	EstimatedCost  decimal.Decimal // USD
	AmountPaid     decimal.Decimal
	IsPaid         bool
	ReservedParts  []ReservedPart
	CreatedAt      time.Time
	CompletedAt    *time.Time
	WarrantyEndsAt *time.Time
}

// Balance devuelve el saldo pendiente de cobro de la reparación.
func (j *RepairJob) Balance() decimal.Decimal {
	b := j.EstimatedCost.Sub(j.AmountPaid)
	if b.IsNegative() {
		return decimal.Zero
	}
	return b
}

// repairStatusOrder define el orden de las transiciones permitidas.
var repairStatusOrder = map[string]int{
	RepairStatusPendiente:    0,
	RepairStatusEnRevision:   1,
	RepairStatusEnReparacion: 2,
	RepairStatusListo:        3,
	RepairStatusCompletado:   4,
}

// ValidRepairStatus indica si el estado es uno de los conocidos.
func ValidRepairStatus(s string) bool {
	_, ok := repairStatusOrder[s]
	return ok
}

// CanTransition indica si la reparación puede pasar de from a to.
// Se permite avanzar (nunca retroceder); la vuelta a Pendiente solo ocurre
// vía reembolso, que no pasa por aquí.
func CanTransition(from, to string) bool {
	fo, ok1 := repairStatusOrder[from]
	to2, ok2 := repairStatusOrder[to]
	if !ok1 || !ok2 {
		return false
	}
	return to2 > fo
}

// Complete marca la reparación como completada: estampa CompletedAt y la
// garantía (CompletedAt + WarrantyDays).
func (j *RepairJob) Complete(now time.Time) {
	j.Status = RepairStatusCompletado
	j.CompletedAt = &now
	warranty := now.AddDate(0, 0, WarrantyDays)
	j.WarrantyEndsAt = &warranty
}
