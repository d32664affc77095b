package usecase

import (
	"time"

	"github.com/bielsasys/pedidos-api/internal/application/auth"
	"github.com/bielsasys/pedidos-api/internal/application/dto"
	"github.com/bielsasys/pedidos-api/internal/domain/entity"
	"github.com/bielsasys/pedidos-api/internal/domain/repository"
)

// ClientUseCase operaciones del admin sobre clientes registrados: listar,
// aprobar y rechazar. El alta y el login viven en application/auth.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// List devuelve todos los clientes, sin hash de contraseña.
func (uc *ClientUseCase) List() ([]dto.ClientResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	return toClientResponses(list), nil
}

// ListPending devuelve los clientes a la espera de aprobación.
func (uc *ClientUseCase) ListPending() ([]dto.ClientResponse, error) {
	list, err := uc.repo.ListByEstado(entity.ClientePendiente)
	if err != nil {
		return nil, err
	}
	return toClientResponses(list), nil
}

// Approve pasa el cliente a activo. Devuelve nil si el ID no existe.
func (uc *ClientUseCase) Approve(id int64) (*dto.ClientResponse, error) {
	return uc.setEstado(id, entity.ClienteActivo)
}

// Reject pasa el cliente a rechazado. Devuelve nil si el ID no existe.
func (uc *ClientUseCase) Reject(id int64) (*dto.ClientResponse, error) {
	return uc.setEstado(id, entity.ClienteRechazado)
}

// setEstado delega en Mutate para que la escritura ocurra dentro del ciclo de
// exclusión del almacén, sin ventana entre la lectura y el cambio de estado.
func (uc *ClientUseCase) setEstado(id int64, estado string) (*dto.ClientResponse, error) {
	client, err := uc.repo.Mutate(id, func(c *entity.Client) error {
		c.Estado = estado
		c.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return auth.ToClientResponse(client), nil
}

func toClientResponses(list []*entity.Client) []dto.ClientResponse {
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *auth.ToClientResponse(c))
	}
	return items
}
