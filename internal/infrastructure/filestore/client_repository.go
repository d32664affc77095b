package filestore

import (
	"strings"

	"github.com/bielsasys/pedidos-api/internal/domain"
	"github.com/bielsasys/pedidos-api/internal/domain/entity"
	"github.com/bielsasys/pedidos-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación del puerto ClientRepository sobre el snapshot.
type ClientRepo struct {
	store *Store
}

// NewClientRepository construye el adaptador de persistencia para clientes.
func NewClientRepository(store *Store) *ClientRepo {
	return &ClientRepo{store: store}
}

// Create asigna ID y persiste. El email es único sin distinguir mayúsculas.
func (r *ClientRepo) Create(client *entity.Client) error {
	return r.store.mutate(func(d *snapshot) error {
		for _, c := range d.Clients {
			if strings.EqualFold(c.Email, client.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		client.ID = d.NextClientID
		d.NextClientID++
		stored := *client
		d.Clients = append(d.Clients, &stored)
		return nil
	})
}

// GetByID devuelve una copia del cliente, o (nil, nil) si no existe.
func (r *ClientRepo) GetByID(id int64) (*entity.Client, error) {
	var found *entity.Client
	err := r.store.view(func(d *snapshot) error {
		for _, c := range d.Clients {
			if c.ID == id {
				cp := *c
				found = &cp
				return nil
			}
		}
		return nil
	})
	return found, err
}

// GetByEmail devuelve una copia del cliente, o (nil, nil) si no existe.
func (r *ClientRepo) GetByEmail(email string) (*entity.Client, error) {
	var found *entity.Client
	err := r.store.view(func(d *snapshot) error {
		for _, c := range d.Clients {
			if strings.EqualFold(c.Email, email) {
				cp := *c
				found = &cp
				return nil
			}
		}
		return nil
	})
	return found, err
}

// Update sustituye el registro con el mismo ID. Sin efecto si no existe.
func (r *ClientRepo) Update(client *entity.Client) error {
	return r.store.mutate(func(d *snapshot) error {
		for i, c := range d.Clients {
			if c.ID == client.ID {
				stored := *client
				d.Clients[i] = &stored
				return nil
			}
		}
		return nil
	})
}

// Mutate aplica fn sobre el cliente dentro del ciclo leer-validar-escribir del
// snapshot. fn trabaja sobre una copia; si devuelve error no se persiste nada.
// Devuelve (nil, nil) si el ID no existe.
func (r *ClientRepo) Mutate(id int64, fn func(c *entity.Client) error) (*entity.Client, error) {
	var updated *entity.Client
	err := r.store.mutate(func(d *snapshot) error {
		for i, c := range d.Clients {
			if c.ID == id {
				cp := *c
				if err := fn(&cp); err != nil {
					return err
				}
				d.Clients[i] = &cp
				out := cp
				updated = &out
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

// List devuelve todos los clientes en orden de inserción (copias).
func (r *ClientRepo) List() ([]*entity.Client, error) {
	return r.listWhere(func(*entity.Client) bool { return true })
}

// ListByEstado filtra por estado de aprobación.
func (r *ClientRepo) ListByEstado(estado string) ([]*entity.Client, error) {
	return r.listWhere(func(c *entity.Client) bool { return c.Estado == estado })
}

func (r *ClientRepo) listWhere(keep func(*entity.Client) bool) ([]*entity.Client, error) {
	var list []*entity.Client
	err := r.store.view(func(d *snapshot) error {
		list = make([]*entity.Client, 0, len(d.Clients))
		for _, c := range d.Clients {
			if keep(c) {
				cp := *c
				list = append(list, &cp)
			}
		}
		return nil
	})
	return list, err
}
