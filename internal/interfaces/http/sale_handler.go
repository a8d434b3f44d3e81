package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/application/reports"
	"github.com/multimovil/pos-api/internal/application/sales"
)

// SaleHandler maneja el cobro, los reembolsos y la consulta de ventas.
type SaleHandler struct {
	checkout *sales.CheckoutUseCase
	refund   *sales.RefundUseCase
	query    *sales.SaleQueryUseCase
	reports  *reports.ReportUseCase
}

func NewSaleHandler(checkout *sales.CheckoutUseCase, refund *sales.RefundUseCase, query *sales.SaleQueryUseCase, reportUC *reports.ReportUseCase) *SaleHandler {
	return &SaleHandler{checkout: checkout, refund: refund, query: query, reports: reportUC}
}

// Checkout godoc
// @Summary      Cobrar una venta
// @Description  Descuenta stock, registra pagos multi-moneda y calcula el vuelto
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body body dto.CheckoutRequest true "Carrito y pagos"
// @Success      201 {object} dto.SaleResponse
// @Failure      422 {object} dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.checkout.Checkout(c.Context(), GetUserID(c), req)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Refund godoc
// @Summary      Reembolsar una venta
// @Description  Revierte el stock según el destino indicado; requiere PIN de administrador
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id path string true "ID de la venta"
// @Param        body body dto.RefundRequest true "Motivo y destino de las unidades"
// @Success      200 {object} dto.SaleResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /api/sales/{id}/refund [post]
func (h *SaleHandler) Refund(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requerido"})
	}
	var req dto.RefundRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.refund.Refund(c.Context(), id, req)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Produce      json
// @Security     Bearer
// @Param        id path string true "ID de la venta"
// @Success      200 {object} dto.SaleResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requerido"})
	}
	resp, err := h.query.GetByID(c.Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar ventas por rango de fechas
// @Tags         sales
// @Produce      json
// @Security     Bearer
// @Param        from query string false "Desde (YYYY-MM-DD), por defecto hoy"
// @Param        to query string false "Hasta (YYYY-MM-DD), por defecto hoy"
// @Param        limit query int false "Límite (1-100)"
// @Param        offset query int false "Desplazamiento"
// @Success      200 {object} dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato de fecha inválido, se espera YYYY-MM-DD"})
	}
	limit, offset := parsePage(c)
	resp, err := h.query.ListByDateRange(c.Context(), from, to, limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// Receipt godoc
// @Summary      Recibo de venta en PDF
// @Description  Ticket térmico de 80mm
// @Tags         sales
// @Produce      application/pdf
// @Security     Bearer
// @Param        id path string true "ID de la venta"
// @Success      200 {file} binary
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requerido"})
	}
	pdfBytes, err := h.reports.SaleReceipt(id)
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="recibo-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}

// parseDateRange lee from/to de la query como YYYY-MM-DD en hora local.
// Sin parámetros devuelve el día de hoy completo.
func parseDateRange(c *fiber.Ctx) (from, to time.Time, err error) {
	now := time.Now()
	from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to = from.AddDate(0, 0, 1)

	if raw := c.Query("from"); raw != "" {
		from, err = time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if raw := c.Query("to"); raw != "" {
		to, err = time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// "to" es inclusivo: se extiende al final de ese día.
		to = to.AddDate(0, 0, 1)
	}
	return from, to, nil
}
