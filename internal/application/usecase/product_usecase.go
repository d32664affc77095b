package usecase

import (
	"time"

	"github.com/bielsasys/pedidos-api/internal/application/dto"
	"github.com/bielsasys/pedidos-api/internal/domain"
	"github.com/bielsasys/pedidos-api/internal/domain/entity"
	"github.com/bielsasys/pedidos-api/internal/domain/repository"
)

// Valores por defecto del catálogo cuando el admin no los indica.
const (
	defaultEmoji    = "📦"
	defaultUnit     = "kg"
	defaultMinOrder = "10 kg"
)

// ProductUseCase casos de uso CRUD del catálogo. La lectura es pública; las
// mutaciones las autoriza el middleware (solo admin).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto con los defaults de catálogo y stock disponible.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Emoji == "" {
		in.Emoji = defaultEmoji
	}
	if in.Unit == "" {
		in.Unit = defaultUnit
	}
	if in.MinOrder == "" {
		in.MinOrder = defaultMinOrder
	}
	now := time.Now()
	product := &entity.Product{
		Name:      in.Name,
		Category:  in.Category,
		Emoji:     in.Emoji,
		Price:     in.Price,
		Unit:      in.Unit,
		Origin:    in.Origin,
		Badge:     in.Badge,
		BadgeType: in.BadgeType,
		MinOrder:  in.MinOrder,
		Stock:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List devuelve el catálogo completo en orden de inserción.
func (uc *ProductUseCase) List() ([]dto.ProductResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Update actualiza los campos presentes. Devuelve nil si el ID no existe.
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Emoji != nil {
		product.Emoji = *in.Emoji
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.Origin != nil {
		product.Origin = *in.Origin
	}
	if in.Badge != nil {
		product.Badge = *in.Badge
	}
	if in.BadgeType != nil {
		product.BadgeType = *in.BadgeType
	}
	if in.MinOrder != nil {
		product.MinOrder = *in.MinOrder
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto y devuelve el registro borrado, o nil si no existe.
func (uc *ProductUseCase) Delete(id int64) (*dto.ProductResponse, error) {
	deleted, err := uc.repo.Delete(id)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, nil
	}
	return toProductResponse(deleted), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Emoji:     p.Emoji,
		Price:     p.Price,
		Unit:      p.Unit,
		Origin:    p.Origin,
		Badge:     p.Badge,
		BadgeType: p.BadgeType,
		MinOrder:  p.MinOrder,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
