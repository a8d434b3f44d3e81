package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/application/usecase"
)

// ProductHandler maneja el CRUD de productos y combos.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Description  Registra un producto simple o un combo
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body body dto.CreateProductRequest true "Producto"
// @Success      201 {object} dto.ProductResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
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
// @Summary      Obtener producto
// @Tags         products
// @Produce      json
// @Security     Bearer
// @Param        id path string true "ID del producto"
// @Success      200 {object} dto.ProductResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requerido"})
	}
	resp, err := h.uc.GetByID(id)
	if err != nil {
		return mapDomainError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Security     Bearer
// @Param        category query string false "Filtrar por categoría"
// @Param        limit query int false "Límite (1-100)"
// @Param        offset query int false "Desplazamiento"
// @Success      200 {object} dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	resp, err := h.uc.List(usecase.NormalizeCategory(c.Query("category")), limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// ListLowStock godoc
// @Summary      Productos con stock bajo
// @Description  Productos cuyo stock disponible está en o bajo su umbral
// @Tags         products
// @Produce      json
// @Security     Bearer
// @Success      200 {array} dto.ProductResponse
// @Router       /api/products/low-stock [get]
func (h *ProductHandler) ListLowStock(c *fiber.Ctx) error {
	resp, err := h.uc.ListLowStock()
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id path string true "ID del producto"
// @Param        body body dto.UpdateProductRequest true "Campos a modificar"
// @Success      200 {object} dto.ProductResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requerido"})
	}
	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Update(id, req)
	if err != nil {
		return mapDomainError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Requiere PIN de administrador para cajeros y técnicos
// @Tags         products
// @Security     Bearer
// @Param        id path string true "ID del producto"
// @Success      204
// @Failure      409 {object} dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requerido"})
	}
	if err := h.uc.Delete(id); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
