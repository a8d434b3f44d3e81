package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/application/usecase"
)

// AuthHandler maneja login, registro y consulta del usuario autenticado.
type AuthHandler struct {
	uc *usecase.AuthUseCase
}

func NewAuthHandler(uc *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Valida credenciales y devuelve un JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credenciales"
// @Success      200 {object} dto.LoginResponse
// @Failure      401 {object} dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	resp, err := h.uc.Login(req)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Crea un usuario nuevo; solo administradores
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body body dto.RegisterRequest true "Datos del usuario"
// @Success      201 {object} dto.UserResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Register(req)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Produce      json
// @Security     Bearer
// @Success      200 {object} dto.UserResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(GetUserID(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return c.JSON(resp)
}

// ListUsers godoc
// @Summary      Listar usuarios
// @Tags         auth
// @Produce      json
// @Security     Bearer
// @Param        limit query int false "Límite (1-100)"
// @Param        offset query int false "Desplazamiento"
// @Success      200 {array} dto.UserResponse
// @Router       /api/users [get]
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	resp, err := h.uc.ListUsers(limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}
