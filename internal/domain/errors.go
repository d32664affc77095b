package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrClientePendiente   = errors.New("cuenta pendiente de aprobación")
	ErrClienteRechazado   = errors.New("cuenta rechazada")
	ErrPedidoVacio        = errors.New("el pedido no tiene líneas")
	ErrLineaInvalida      = errors.New("línea de pedido con cantidad o precio no válidos")
	ErrEstadoInvalido     = errors.New("estado de pedido desconocido")
	ErrTransicionInvalida = errors.New("transición de estado no permitida")
)
