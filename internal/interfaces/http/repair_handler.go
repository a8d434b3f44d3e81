package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/application/reports"
	"github.com/multimovil/pos-api/internal/application/usecase"
)

// RepairHandler maneja las órdenes de reparación y sus repuestos apartados.
type RepairHandler struct {
	uc      *usecase.RepairUseCase
	reports *reports.ReportUseCase
}

func NewRepairHandler(uc *usecase.RepairUseCase, reportUC *reports.ReportUseCase) *RepairHandler {
	return &RepairHandler{uc: uc, reports: reportUC}
}

// Create godoc
// @Summary      Registrar orden de reparación
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body body dto.CreateRepairRequest true "Orden"
// @Success      201 {object} dto.RepairResponse
// @Router       /api/repairs [post]
func (h *RepairHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRepairRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(req)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Obtener orden de reparación
// @Tags         repairs
// @Produce      json
// @Security     Bearer
// @Param        id path string true "ID de la orden"
// @Success      200 {object} dto.RepairResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/repairs/{id} [get]
func (h *RepairHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requerido"})
	}
	resp, err := h.uc.GetByID(id)
	if err != nil {
		return mapDomainError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar órdenes de reparación
// @Tags         repairs
// @Produce      json
// @Security     Bearer
// @Param        status query string false "Filtrar por estado"
// @Param        limit query int false "Límite (1-100)"
// @Param        offset query int false "Desplazamiento"
// @Success      200 {object} dto.RepairListResponse
// @Router       /api/repairs [get]
func (h *RepairHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	resp, err := h.uc.List(c.Query("status"), limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Actualizar orden de reparación
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id path string true "ID de la orden"
// @Param        body body dto.UpdateRepairRequest true "Campos a modificar"
// @Success      200 {object} dto.RepairResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /api/repairs/{id} [put]
func (h *RepairHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requerido"})
	}
	var req dto.UpdateRepairRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Update(id, req)
	if err != nil {
		return mapDomainError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(resp)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la orden
// @Description  Solo transiciones hacia adelante; Completado lo estampa el cobro
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id path string true "ID de la orden"
// @Param        body body dto.UpdateRepairStatusRequest true "Nuevo estado"
// @Success      200 {object} dto.RepairResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /api/repairs/{id}/status [patch]
func (h *RepairHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requerido"})
	}
	var req dto.UpdateRepairStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.UpdateStatus(id, req)
	if err != nil {
		return mapDomainError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(resp)
}

// ReserveParts godoc
// @Summary      Apartar repuestos
// @Description  Aparta stock de repuestos para la orden; el lote es atómico
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id path string true "ID de la orden"
// @Param        body body dto.ReservePartsRequest true "Repuestos"
// @Success      200 {object} dto.RepairResponse
// @Failure      422 {object} dto.ErrorResponse
// @Router       /api/repairs/{id}/parts [post]
func (h *RepairHandler) ReserveParts(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requerido"})
	}
	var req dto.ReservePartsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.ReserveParts(c.Context(), id, req)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// ReleasePart godoc
// @Summary      Liberar repuesto apartado
// @Tags         repairs
// @Produce      json
// @Security     Bearer
// @Param        id path string true "ID de la orden"
// @Param        productId path string true "ID del repuesto"
// @Success      200 {object} dto.RepairResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/repairs/{id}/parts/{productId} [delete]
func (h *RepairHandler) ReleasePart(c *fiber.Ctx) error {
	id, productID := c.Params("id"), c.Params("productId")
	if id == "" || productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id y productId requeridos"})
	}
	resp, err := h.uc.ReleasePart(c.Context(), id, productID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Eliminar orden de reparación
// @Description  Libera todos los repuestos apartados antes de borrar
// @Tags         repairs
// @Security     Bearer
// @Param        id path string true "ID de la orden"
// @Success      204
// @Failure      409 {object} dto.ErrorResponse
// @Router       /api/repairs/{id} [delete]
func (h *RepairHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requerido"})
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Ticket godoc
// @Summary      Orden de servicio en PDF
// @Description  Ticket térmico de 80mm para entregar al cliente
// @Tags         repairs
// @Produce      application/pdf
// @Security     Bearer
// @Param        id path string true "ID de la orden"
// @Success      200 {file} binary
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/repairs/{id}/ticket [get]
func (h *RepairHandler) Ticket(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requerido"})
	}
	pdfBytes, err := h.reports.RepairTicket(id)
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="orden-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}
