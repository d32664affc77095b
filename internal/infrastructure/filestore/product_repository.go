package filestore

import (
	"github.com/bielsasys/pedidos-api/internal/domain/entity"
	"github.com/bielsasys/pedidos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre el snapshot.
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

// Create asigna el siguiente ID del contador de productos y persiste.
func (r *ProductRepo) Create(product *entity.Product) error {
	return r.store.mutate(func(d *snapshot) error {
		product.ID = d.NextProductID
		d.NextProductID++
		stored := *product
		d.Products = append(d.Products, &stored)
		return nil
	})
}

// GetByID devuelve una copia del producto, o (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	var found *entity.Product
	err := r.store.view(func(d *snapshot) error {
		for _, p := range d.Products {
			if p.ID == id {
				cp := *p
				found = &cp
				return nil
			}
		}
		return nil
	})
	return found, err
}

// Update sustituye el registro con el mismo ID. Sin efecto si no existe.
func (r *ProductRepo) Update(product *entity.Product) error {
	return r.store.mutate(func(d *snapshot) error {
		for i, p := range d.Products {
			if p.ID == product.ID {
				stored := *product
				d.Products[i] = &stored
				return nil
			}
		}
		return nil
	})
}

// Delete elimina y devuelve el registro, o (nil, nil) si el ID no existe.
// El contador no retrocede: los IDs borrados no se reutilizan.
func (r *ProductRepo) Delete(id int64) (*entity.Product, error) {
	var deleted *entity.Product
	err := r.store.mutate(func(d *snapshot) error {
		for i, p := range d.Products {
			if p.ID == id {
				cp := *p
				deleted = &cp
				d.Products = append(d.Products[:i], d.Products[i+1:]...)
				return nil
			}
		}
		return nil
	})
	return deleted, err
}

// List devuelve el catálogo en orden de inserción (copias).
func (r *ProductRepo) List() ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.store.view(func(d *snapshot) error {
		list = make([]*entity.Product, 0, len(d.Products))
		for _, p := range d.Products {
			cp := *p
			list = append(list, &cp)
		}
		return nil
	})
	return list, err
}
