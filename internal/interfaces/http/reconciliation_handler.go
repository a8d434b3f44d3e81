package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/application/sales"
)

// ReconciliationHandler maneja el cierre de día y la consulta de arqueos.
type ReconciliationHandler struct {
	uc *sales.CloseDayUseCase
}

func NewReconciliationHandler(uc *sales.CloseDayUseCase) *ReconciliationHandler {
	return &ReconciliationHandler{uc: uc}
}

// CloseDay godoc
// @Summary      Cerrar el día
// @Description  Arqueo de caja: compara lo contado contra lo vendido por método de pago y sella las ventas del día. Requiere PIN de administrador.
// @Tags         reconciliations
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body body dto.CloseDayRequest true "Montos contados por método"
// @Success      201 {object} dto.ReconciliationResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /api/reconciliations/close [post]
func (h *ReconciliationHandler) CloseDay(c *fiber.Ctx) error {
	var req dto.CloseDayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.CloseDay(c.Context(), GetUserID(c), req)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Obtener arqueo
// @Tags         reconciliations
// @Produce      json
// @Security     Bearer
// @Param        id path string true "ID del arqueo"
// @Success      200 {object} dto.ReconciliationResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/reconciliations/{id} [get]
func (h *ReconciliationHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requerido"})
	}
	resp, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "arqueo no encontrado"})
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar arqueos
// @Tags         reconciliations
// @Produce      json
// @Security     Bearer
// @Param        limit query int false "Límite (1-100)"
// @Param        offset query int false "Desplazamiento"
// @Success      200 {object} dto.ReconciliationListResponse
// @Router       /api/reconciliations [get]
func (h *ReconciliationHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	resp, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}
