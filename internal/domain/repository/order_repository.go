package repository

import "github.com/bielsasys/pedidos-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order (DIP).
// Los pedidos no se borran nunca; no hay Delete. Toda escritura que dependa
// del estado previo (la aprobación del cliente, el estado actual del pedido)
// pasa por Create o Mutate, que validan y aplican dentro del mismo ciclo de
// exclusión del almacén.
type OrderRepository interface {
	// Create asigna el ID y persiste el pedido. Dentro del mismo ciclo
	// verifica que el cliente del pedido existe y está activo (si no,
	// domain.ErrNotFound, ErrClientePendiente o ErrClienteRechazado) y
	// copia sus datos desnormalizados (nombre, empresa, email) tal como
	// están en ese instante.
	Create(order *entity.Order) error
	GetByID(id int64) (*entity.Order, error)
	// Mutate lee el pedido, aplica fn y persiste el resultado como una sola
	// operación: ningún otro escritor observa estados intermedios ni valida
	// contra un estado ya sobrescrito. Si fn devuelve error no se persiste
	// nada y el error se propaga. (nil, nil) si el ID no existe.
	Mutate(id int64, fn func(o *entity.Order) error) (*entity.Order, error)
	// List devuelve todos los pedidos, los más recientes primero.
	List() ([]*entity.Order, error)
	// ListByClient devuelve los pedidos de un cliente, los más recientes primero.
	ListByClient(clientID int64) ([]*entity.Order, error)
}
