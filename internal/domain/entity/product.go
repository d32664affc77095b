package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una entrada del catálogo público.
// El precio es por unidad de medida (kg, ud, caja...); MinOrder es texto libre
// ("50 kg") porque se muestra tal cual en la tienda.
type Product struct {
	ID        int64
	Name      string
	Category  string // citrico, verdura, fruta...
	Emoji     string
	Price     decimal.Decimal
	Unit      string
	Origin    string
	Badge     string // etiqueta promocional opcional ("Eco", "Temporada")
	BadgeType string
	MinOrder  string
	Stock     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
