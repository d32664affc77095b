package filestore

import (
	"sort"

	"github.com/bielsasys/pedidos-api/internal/domain"
	"github.com/bielsasys/pedidos-api/internal/domain/entity"
	"github.com/bielsasys/pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre el snapshot.
type OrderRepo struct {
	store *Store
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(store *Store) *OrderRepo {
	return &OrderRepo{store: store}
}

// Create verifica la aprobación del cliente, copia sus datos desnormalizados,
// asigna el siguiente ID del contador de pedidos y persiste. Todo ocurre bajo
// el mutex del snapshot: nadie puede rechazar al cliente entre la comprobación
// y la escritura.
func (r *OrderRepo) Create(order *entity.Order) error {
	return r.store.mutate(func(d *snapshot) error {
		var client *entity.Client
		for _, c := range d.Clients {
			if c.ID == order.ClientID {
				client = c
				break
			}
		}
		if client == nil {
			return domain.ErrNotFound
		}
		switch client.Estado {
		case entity.ClienteActivo:
		case entity.ClienteRechazado:
			return domain.ErrClienteRechazado
		default:
			return domain.ErrClientePendiente
		}
		order.ClientName = client.Name
		order.ClientCompany = client.Company
		order.ClientEmail = client.Email
		order.ID = d.NextOrderID
		d.NextOrderID++
		stored := copyOrder(order)
		d.Orders = append(d.Orders, stored)
		return nil
	})
}

// GetByID devuelve una copia del pedido, o (nil, nil) si no existe.
func (r *OrderRepo) GetByID(id int64) (*entity.Order, error) {
	var found *entity.Order
	err := r.store.view(func(d *snapshot) error {
		for _, o := range d.Orders {
			if o.ID == id {
				found = copyOrder(o)
				return nil
			}
		}
		return nil
	})
	return found, err
}

// Mutate aplica fn sobre el pedido dentro del ciclo leer-validar-escribir del
// snapshot. fn trabaja sobre una copia; si devuelve error no se persiste nada.
// Devuelve (nil, nil) si el ID no existe.
func (r *OrderRepo) Mutate(id int64, fn func(o *entity.Order) error) (*entity.Order, error) {
	var updated *entity.Order
	err := r.store.mutate(func(d *snapshot) error {
		for i, o := range d.Orders {
			if o.ID == id {
				cp := copyOrder(o)
				if err := fn(cp); err != nil {
					return err
				}
				d.Orders[i] = cp
				updated = copyOrder(cp)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// List devuelve todos los pedidos, los más recientes primero.
func (r *OrderRepo) List() ([]*entity.Order, error) {
	return r.listWhere(func(*entity.Order) bool { return true })
}

// ListByClient devuelve los pedidos de un cliente, los más recientes primero.
func (r *OrderRepo) ListByClient(clientID int64) ([]*entity.Order, error) {
	return r.listWhere(func(o *entity.Order) bool { return o.ClientID == clientID })
}

func (r *OrderRepo) listWhere(keep func(*entity.Order) bool) ([]*entity.Order, error) {
	var list []*entity.Order
	err := r.store.view(func(d *snapshot) error {
		list = make([]*entity.Order, 0, len(d.Orders))
		for _, o := range d.Orders {
			if keep(o) {
				list = append(list, copyOrder(o))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// copyOrder copia el pedido incluida su slice de líneas, para que el llamante
// nunca comparta memoria con el snapshot.
func copyOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.Items = make([]entity.OrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	return &cp
}
