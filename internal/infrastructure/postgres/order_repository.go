package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bielsasys/pedidos-api/internal/domain"
	"github.com/bielsasys/pedidos-api/internal/domain/entity"
	"github.com/bielsasys/pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, client_id, client_name, client_company, client_email, items, total, note, delivery_date, estado, created_at, updated_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Las líneas del pedido viajan enteras en la columna JSONB items.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta el pedido; el ID lo genera el servidor (BIGSERIAL).
// El INSERT...SELECT toma los datos desnormalizados del cliente y comprueba su
// aprobación en la misma sentencia, de forma que un rechazo concurrente nunca
// cuela un pedido de un cliente ya no activo.
func (r *OrderRepo) Create(order *entity.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	query := `
		INSERT INTO orders (client_id, client_name, client_company, client_email, items, total, note, delivery_date, estado, created_at, updated_at)
		SELECT c.id, c.name, c.company, c.email, $2, $3, $4, $5, $6, $7, $8
		FROM clients c
		WHERE c.id = $1 AND c.estado = $9
		RETURNING id, client_name, client_company, client_email`
	err = r.q.QueryRow(context.Background(), query,
		order.ClientID, items, order.Total, order.Note, order.DeliveryDate,
		order.Estado, order.CreatedAt, order.UpdatedAt, entity.ClienteActivo,
	).Scan(&order.ID, &order.ClientName, &order.ClientCompany, &order.ClientEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.clienteNoActivo(order.ClientID)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// clienteNoActivo traduce un INSERT sin filas al error de dominio concreto:
// cliente inexistente, rechazado o aún pendiente de aprobación.
func (r *OrderRepo) clienteNoActivo(clientID int64) error {
	var estado string
	err := r.q.QueryRow(context.Background(),
		`SELECT estado FROM clients WHERE id = $1`, clientID,
	).Scan(&estado)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get client estado: %w", err)
	}
	if estado == entity.ClienteRechazado {
		return domain.ErrClienteRechazado
	}
	return domain.ErrClientePendiente
}

// GetByID obtiene un pedido por ID, (nil, nil) si no existe.
func (r *OrderRepo) GetByID(id int64) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// Mutate lee el pedido, aplica fn y escribe con un UPDATE condicionado a que
// updated_at no haya cambiado desde la lectura. Si otro escritor gana la
// carrera se relee y fn vuelve a validar contra el estado fresco, así que
// ninguna transición se decide sobre datos obsoletos. (nil, nil) si no existe.
func (r *OrderRepo) Mutate(id int64, fn func(o *entity.Order) error) (*entity.Order, error) {
	for {
		o, err := r.GetByID(id)
		if err != nil || o == nil {
			return nil, err
		}
		prev := o.UpdatedAt
		if err := fn(o); err != nil {
			return nil, err
		}
		items, err := json.Marshal(o.Items)
		if err != nil {
			return nil, fmt.Errorf("marshal items: %w", err)
		}
		query := `
			UPDATE orders SET items = $2, total = $3, note = $4, delivery_date = $5, estado = $6, updated_at = $7
			WHERE id = $1 AND updated_at = $8`
		tag, err := r.q.Exec(context.Background(), query,
			o.ID, items, o.Total, o.Note, o.DeliveryDate, o.Estado, o.UpdatedAt, prev,
		)
		if err != nil {
			return nil, fmt.Errorf("update order: %w", err)
		}
		if tag.RowsAffected() == 1 {
			return o, nil
		}
		// otro escritor modificó el pedido entre lectura y escritura
	}
}

// List devuelve todos los pedidos, los más recientes primero.
func (r *OrderRepo) List() ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id DESC`
	return r.scanMany(query)
}

// ListByClient devuelve los pedidos de un cliente, los más recientes primero.
func (r *OrderRepo) ListByClient(clientID int64) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE client_id = $1 ORDER BY created_at DESC, id DESC`
	return r.scanMany(query, clientID)
}

func (r *OrderRepo) scanMany(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var items []byte
	err := row.Scan(&o.ID, &o.ClientID, &o.ClientName, &o.ClientCompany, &o.ClientEmail,
		&items, &o.Total, &o.Note, &o.DeliveryDate, &o.Estado, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	return &o, nil
}
