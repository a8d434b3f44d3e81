package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRepairRequest entrada para registrar una orden de reparación.
type CreateRepairRequest struct {
	CustomerName  string          `json:"customer_name" validate:"required"`
	CustomerPhone string          `json:"customer_phone"`
	DeviceBrand   string          `json:"device_brand"`
	DeviceModel   string          `json:"device_model" validate:"required"`
	DeviceIMEI    string          `json:"device_imei"`
	ReportedIssue string          `json:"reported_issue" validate:"required"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

// UpdateRepairRequest datos editables de la orden.
type UpdateRepairRequest struct {
	CustomerName  *string          `json:"customer_name"`
	CustomerPhone *string          `json:"customer_phone"`
	ReportedIssue *string          `json:"reported_issue"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost"`
}

// ReservePartRequest un repuesto a apartar para la reparación.
type ReservePartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// ReservePartsRequest lote de repuestos a apartar.
type ReservePartsRequest struct {
	Parts []ReservePartRequest `json:"parts" validate:"required,min=1"`
}

// UpdateRepairStatusRequest cambio de estado de la orden.
type UpdateRepairStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ReservedPartResponse repuesto apartado.
type ReservedPartResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// RepairResponse salida de una orden de reparación.
type RepairResponse struct {
	ID             string                 `json:"id"`
	CustomerName   string                 `json:"customer_name"`
	CustomerPhone  string                 `json:"customer_phone"`
	DeviceBrand    string                 `json:"device_brand"`
	DeviceModel    string                 `json:"device_model"`
	DeviceIMEI     string                 `json:"device_imei"`
	ReportedIssue  string                 `json:"reported_issue"`
	Status         string                 `json:"status"`
	EstimatedCost  decimal.Decimal        `json:"estimated_cost"`
	AmountPaid     decimal.Decimal        `json:"amount_paid"`
	Balance        decimal.Decimal        `json:"balance"`
	IsPaid         bool                   `json:"is_paid"`
	ReservedParts  []ReservedPartResponse `json:"reserved_parts"`
	CreatedAt      time.Time              `json:"created_at"`
	CompletedAt    *time.Time             `json:"completed_at,omitempty"`
	WarrantyEndsAt *time.Time             `json:"warranty_ends_at,omitempty"`
}

// RepairListResponse lista paginada de reparaciones.
type RepairListResponse struct {
	Items []RepairResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
