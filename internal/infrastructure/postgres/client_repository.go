package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bielsasys/pedidos-api/internal/domain"
	"github.com/bielsasys/pedidos-api/internal/domain/entity"
	"github.com/bielsasys/pedidos-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, name, company, tax_id, email, phone, password_hash, estado, created_at, updated_at`

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de persistencia para clientes.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// isUniqueViolation detecta el SQLSTATE 23505 (unique_violation), el que
// dispara el índice único sobre lower(email).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create inserta el cliente; el índice único sobre lower(email) convierte el
// duplicado en domain.ErrEmailAlreadyExists.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (name, company, tax_id, email, phone, password_hash, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		client.Name, client.Company, client.TaxID, client.Email, client.Phone,
		client.PasswordHash, client.Estado, client.CreatedAt, client.UpdatedAt,
	).Scan(&client.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID, (nil, nil) si no existe.
func (r *ClientRepo) GetByID(id int64) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get client")
}

// GetByEmail obtiene un cliente por email, (nil, nil) si no existe.
func (r *ClientRepo) GetByEmail(email string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE lower(email) = lower($1) LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email), "get client by email")
}

// Update actualiza un cliente existente.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, company = $3, tax_id = $4, email = $5, phone = $6,
			password_hash = $7, estado = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Company, client.TaxID, client.Email, client.Phone,
		client.PasswordHash, client.Estado, client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Mutate lee el cliente, aplica fn y escribe con un UPDATE condicionado a que
// updated_at no haya cambiado desde la lectura; si otro escritor gana la
// carrera se reintenta sobre el estado fresco. (nil, nil) si el ID no existe.
func (r *ClientRepo) Mutate(id int64, fn func(c *entity.Client) error) (*entity.Client, error) {
	for {
		c, err := r.GetByID(id)
		if err != nil || c == nil {
			return nil, err
		}
		prev := c.UpdatedAt
		if err := fn(c); err != nil {
			return nil, err
		}
		query := `
			UPDATE clients SET name = $2, company = $3, tax_id = $4, email = $5, phone = $6,
				password_hash = $7, estado = $8, updated_at = $9
			WHERE id = $1 AND updated_at = $10`
		tag, err := r.q.Exec(context.Background(), query,
			c.ID, c.Name, c.Company, c.TaxID, c.Email, c.Phone,
			c.PasswordHash, c.Estado, c.UpdatedAt, prev,
		)
		if err != nil {
			return nil, fmt.Errorf("mutate client: %w", err)
		}
		if tag.RowsAffected() == 1 {
			return c, nil
		}
		// otro escritor modificó el cliente entre lectura y escritura
	}
}

// List devuelve todos los clientes en orden de inserción.
func (r *ClientRepo) List() ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY id`
	return r.scanMany(query)
}

// ListByEstado filtra por estado de aprobación.
func (r *ClientRepo) ListByEstado(estado string) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE estado = $1 ORDER BY id`
	return r.scanMany(query, estado)
}

func (r *ClientRepo) scanOne(row pgx.Row, op string) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.Name, &c.Company, &c.TaxID, &c.Email, &c.Phone,
		&c.PasswordHash, &c.Estado, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

func (r *ClientRepo) scanMany(query string, args ...any) ([]*entity.Client, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Company, &c.TaxID, &c.Email, &c.Phone,
			&c.PasswordHash, &c.Estado, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
