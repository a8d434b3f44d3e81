package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrSaleReconciled     = errors.New("la venta ya fue cerrada en un arqueo y no admite cambios")
	ErrSaleRefunded       = errors.New("la venta ya fue reembolsada")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrInvalidPIN         = errors.New("PIN de administrador incorrecto")
	ErrInsufficientPay    = errors.New("el monto pagado no cubre el total de la venta")
	ErrDayAlreadyClosed   = errors.New("el día ya fue cerrado")
)
