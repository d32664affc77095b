package entity

import "time"

// Estados de aprobación de un cliente. El alta lo deja en pendiente (o activo
// si el registro auto-aprueba); solo el admin lo mueve a activo o rechazado.
const (
	ClientePendiente = "pendiente"
	ClienteActivo    = "activo"
	ClienteRechazado = "rechazado"
)

// Client representa un comprador registrado. PasswordHash nunca sale en
// respuestas; los DTOs lo omiten.
type Client struct {
	ID           int64
	Name         string
	Company      string
	TaxID        string // CIF/NIF
	Email        string // único
	Phone        string
	PasswordHash string
	Estado       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PuedeComprar indica si el cliente puede colocar pedidos.
func (c *Client) PuedeComprar() bool {
	return c.Estado == ClienteActivo
}
