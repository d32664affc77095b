package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pedido.
const (
	PedidoPendiente     = "pendiente"
	PedidoConfirmado    = "confirmado"
	PedidoEnPreparacion = "en_preparacion"
	PedidoEnviado       = "enviado"
	PedidoEntregado     = "entregado"
	PedidoCancelado     = "cancelado"
)

// siguienteEstado define la adyacencia del flujo normal. cancelado se trata
// aparte: es alcanzable desde cualquier estado no terminal.
var siguienteEstado = map[string]string{
	PedidoPendiente:     PedidoConfirmado,
	PedidoConfirmado:    PedidoEnPreparacion,
	PedidoEnPreparacion: PedidoEnviado,
	PedidoEnviado:       PedidoEntregado,
}

// EstadoPedidoValido indica si s pertenece a la enumeración de estados.
func EstadoPedidoValido(s string) bool {
	switch s {
	case PedidoPendiente, PedidoConfirmado, PedidoEnPreparacion,
		PedidoEnviado, PedidoEntregado, PedidoCancelado:
		return true
	}
	return false
}

// EstadoTerminal indica si desde s no hay más transiciones.
func EstadoTerminal(s string) bool {
	return s == PedidoEntregado || s == PedidoCancelado
}

// PuedeTransicionar valida la transición from → to: solo el paso adyacente del
// flujo normal, o cancelar mientras el pedido no esté en estado terminal.
func PuedeTransicionar(from, to string) bool {
	if EstadoTerminal(from) {
		return false
	}
	if to == PedidoCancelado {
		return true
	}
	return siguienteEstado[from] == to
}

// OrderItem es una línea de pedido. Producto, precio y unidad se copian del
// catálogo en el momento de crear el pedido; cambios posteriores del catálogo
// no afectan a pedidos ya colocados.
type OrderItem struct {
	Product  string          `json:"product"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// Subtotal devuelve precio × cantidad sin redondear; el redondeo a dos
// decimales se aplica una sola vez sobre el total del pedido.
func (it OrderItem) Subtotal() decimal.Decimal {
	return it.Price.Mul(it.Quantity)
}

// Order representa una solicitud de compra. Los datos del cliente van
// desnormalizados (nombre, empresa, email) tal como eran al crear el pedido.
// Los pedidos nunca se borran, solo cambian de estado.
type Order struct {
	ID            int64
	ClientID      int64
	ClientName    string
	ClientCompany string
	ClientEmail   string
	Items         []OrderItem
	Total         decimal.Decimal
	Note          string
	DeliveryDate  string // fecha solicitada por el cliente, texto libre
	Estado        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
