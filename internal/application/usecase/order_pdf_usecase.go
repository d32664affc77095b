package usecase

import (
	"context"

	"github.com/bielsasys/pedidos-api/internal/domain"
	"github.com/bielsasys/pedidos-api/internal/domain/entity"
	"github.com/bielsasys/pedidos-api/internal/domain/repository"
)

// OrderPDFGenerator puerto del generador de albaranes en PDF.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.Order) ([]byte, error)
}

// OrderPDFUseCase produce el albarán de un pedido para el panel de admin.
type OrderPDFUseCase struct {
	orderRepo repository.OrderRepository
	generator OrderPDFGenerator
}

// NewOrderPDFUseCase construye el caso de uso.
func NewOrderPDFUseCase(orderRepo repository.OrderRepository, generator OrderPDFGenerator) *OrderPDFUseCase {
	return &OrderPDFUseCase{orderRepo: orderRepo, generator: generator}
}

// Generate devuelve los bytes del PDF del pedido indicado.
func (uc *OrderPDFUseCase) Generate(ctx context.Context, orderID int64) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateOrderPDF(ctx, order)
}
