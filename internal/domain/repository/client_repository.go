package repository

import "github.com/bielsasys/pedidos-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para Client (DIP).
type ClientRepository interface {
	// Create asigna el ID y persiste. Devuelve domain.ErrEmailAlreadyExists
	// si el email ya está registrado.
	Create(client *entity.Client) error
	GetByID(id int64) (*entity.Client, error)
	GetByEmail(email string) (*entity.Client, error)
	Update(client *entity.Client) error
	// Mutate lee el cliente, aplica fn y persiste el resultado como una sola
	// operación, sin estados intermedios visibles para otros escritores.
	// fn no debe cambiar el email. (nil, nil) si el ID no existe.
	Mutate(id int64, fn func(c *entity.Client) error) (*entity.Client, error)
	// List devuelve todos los clientes en orden de inserción.
	List() ([]*entity.Client, error)
	// ListByEstado filtra por estado de aprobación.
	ListByEstado(estado string) ([]*entity.Client, error)
}
