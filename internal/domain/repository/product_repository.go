package repository

import "github.com/bielsasys/pedidos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Create asigna el ID sobre la entidad. Los métodos que buscan por ID
// devuelven (nil, nil) cuando no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	Update(product *entity.Product) error
	// Delete devuelve el registro eliminado para confirmación, o (nil, nil)
	// si el ID no existe.
	Delete(id int64) (*entity.Product, error)
	// List devuelve el catálogo completo en orden de inserción.
	List() ([]*entity.Product, error)
}
