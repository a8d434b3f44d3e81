package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/application/usecase"
)

// SettingsHandler maneja la configuración de la tienda y las tasas de cambio.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Configuración actual
// @Tags         settings
// @Produce      json
// @Security     Bearer
// @Success      200 {object} dto.SettingsResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.Get()
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Actualizar configuración
// @Description  Tasas de cambio, margen por defecto y PIN de administrador
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body body dto.UpdateSettingsRequest true "Campos a modificar"
// @Success      200 {object} dto.SettingsResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Update(req)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// GetRates godoc
// @Summary      Tasas de cambio vigentes
// @Description  Tasa BCV y tasa paralela con su última actualización
// @Tags         settings
// @Produce      json
// @Success      200 {object} dto.RatesResponse
// @Router       /api/rates [get]
func (h *SettingsHandler) GetRates(c *fiber.Ctx) error {
	resp, err := h.uc.GetRates(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// VerifyPIN godoc
// @Summary      Verificar PIN de administrador
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body body dto.VerifyPINRequest true "PIN"
// @Success      204
// @Failure      403 {object} dto.ErrorResponse
// @Router       /api/settings/verify-pin [post]
func (h *SettingsHandler) VerifyPIN(c *fiber.Ctx) error {
	var req dto.VerifyPINRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.VerifyPIN(req.PIN); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
