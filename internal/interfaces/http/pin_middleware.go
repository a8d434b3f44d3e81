package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/application/usecase"
	"github.com/multimovil/pos-api/internal/domain/entity"
)

// HeaderAdminPIN header con el PIN de administrador para operaciones
// destructivas: reembolsos, cierre de día y borrado de productos.
const HeaderAdminPIN = "X-Admin-Pin"

// AdminPINMiddleware exige un PIN de administrador válido además del JWT.
// Los administradores pasan sin PIN; el resto debe presentarlo.
func AdminPINMiddleware(settingsUC *usecase.SettingsUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) == entity.RoleAdmin {
			return c.Next()
		}
		pin := c.Get(HeaderAdminPIN)
		if pin == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "MISSING_PIN", Message: "esta operación requiere el PIN de administrador"})
		}
		if err := settingsUC.VerifyPIN(pin); err != nil {
			return mapDomainError(c, err)
		}
		return c.Next()
	}
}
