package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Emoji     string          `json:"emoji"`
	Price     decimal.Decimal `json:"price"`
	Unit      string          `json:"unit"`
	Origin    string          `json:"origin"`
	Badge     string          `json:"badge"`
	BadgeType string          `json:"badgeType"`
	MinOrder  string          `json:"minOrder"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name      *string          `json:"name"`
	Category  *string          `json:"category"`
	Emoji     *string          `json:"emoji"`
	Price     *decimal.Decimal `json:"price"`
	Unit      *string          `json:"unit"`
	Origin    *string          `json:"origin"`
	Badge     *string          `json:"badge"`
	BadgeType *string          `json:"badgeType"`
	MinOrder  *string          `json:"minOrder"`
	Stock     *bool            `json:"stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Emoji     string          `json:"emoji"`
	Price     decimal.Decimal `json:"price"`
	Unit      string          `json:"unit"`
	Origin    string          `json:"origin"`
	Badge     string          `json:"badge"`
	BadgeType string          `json:"badgeType"`
	MinOrder  string          `json:"minOrder"`
	Stock     bool            `json:"stock"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// DeletedProductResponse confirma el borrado devolviendo el registro eliminado.
type DeletedProductResponse struct {
	Deleted ProductResponse `json:"deleted"`
}
