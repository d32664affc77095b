package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaSQL define las tres tablas del sistema. Los IDs los genera el servidor
// (BIGSERIAL, monotónicos, no se reutilizan tras borrados); las líneas de
// pedido van en una columna JSONB porque se leen y escriben siempre enteras.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS products (
    id         BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    category   TEXT NOT NULL DEFAULT '',
    emoji      TEXT NOT NULL DEFAULT '📦',
    price      NUMERIC(12,2) NOT NULL DEFAULT 0,
    unit       TEXT NOT NULL DEFAULT 'kg',
    origin     TEXT NOT NULL DEFAULT '',
    badge      TEXT NOT NULL DEFAULT '',
    badge_type TEXT NOT NULL DEFAULT '',
    min_order  TEXT NOT NULL DEFAULT '10 kg',
    stock      BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS clients (
    id            BIGSERIAL PRIMARY KEY,
    name          TEXT NOT NULL,
    company       TEXT NOT NULL DEFAULT '',
    tax_id        TEXT NOT NULL DEFAULT '',
    email         TEXT NOT NULL,
    phone         TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    estado        TEXT NOT NULL DEFAULT 'pendiente',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS uk_clients_email ON clients (lower(email));

CREATE TABLE IF NOT EXISTS orders (
    id             BIGSERIAL PRIMARY KEY,
    client_id      BIGINT NOT NULL REFERENCES clients(id),
    client_name    TEXT NOT NULL,
    client_company TEXT NOT NULL DEFAULT '',
    client_email   TEXT NOT NULL,
    items          JSONB NOT NULL,
    total          NUMERIC(12,2) NOT NULL,
    note           TEXT NOT NULL DEFAULT '',
    delivery_date  TEXT NOT NULL DEFAULT '',
    estado         TEXT NOT NULL DEFAULT 'pendiente',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_orders_client ON orders (client_id);
CREATE INDEX IF NOT EXISTS idx_orders_created ON orders (created_at);
`

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
