package auth

import (
	"crypto/subtle"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bielsasys/pedidos-api/internal/application/dto"
	"github.com/bielsasys/pedidos-api/internal/domain"
	"github.com/bielsasys/pedidos-api/internal/domain/entity"
	"github.com/bielsasys/pedidos-api/internal/domain/repository"
	"github.com/bielsasys/pedidos-api/pkg/jwt"
)

// Config parámetros de autenticación y emisión de tokens.
type Config struct {
	JWTSecret     string
	JWTExpHours   int
	JWTIssuer     string
	AdminUser     string
	AdminPassword string
	// AutoApprove controla el estado inicial de un cliente registrado:
	// false -> pendiente (requiere aprobación del admin), true -> activo.
	AutoApprove bool
	// FailDelay pausa fija antes de responder a un login fallido, para que el
	// tiempo de respuesta no delate si el usuario/email existe. 0 en tests.
	FailDelay time.Duration
}

// AuthUseCase casos de uso de autenticación: login de admin, registro y login de clientes.
type AuthUseCase struct {
	clientRepo repository.ClientRepository
	cfg        Config
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(clientRepo repository.ClientRepository, cfg Config) *AuthUseCase {
	return &AuthUseCase{clientRepo: clientRepo, cfg: cfg}
}

// expiresIn segundos de vida de los tokens emitidos.
func (uc *AuthUseCase) expiresIn() int64 {
	return int64(uc.cfg.JWTExpHours) * 3600
}

// AdminLogin compara las credenciales contra la configuración y emite un token
// con rol admin. La comparación es en tiempo constante. Sin ADMIN_PASSWORD
// configurado no hay cuenta de admin: una contraseña vacía compararía igual a
// vacía y cualquiera obtendría el token.
func (uc *AuthUseCase) AdminLogin(in dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if uc.cfg.AdminPassword == "" {
		uc.sleepOnFailure()
		return nil, domain.ErrUnauthorized
	}
	userOK := subtle.ConstantTimeCompare([]byte(in.Username), []byte(uc.cfg.AdminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(in.Password), []byte(uc.cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		uc.sleepOnFailure()
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.GenerateAdmin(uc.cfg.JWTSecret, in.Username, uc.cfg.JWTIssuer, uc.cfg.JWTExpHours)
	if err != nil {
		return nil, err
	}
	return &dto.AdminLoginResponse{Token: token, ExpiresIn: uc.expiresIn()}, nil
}

// RegisterCliente crea un cliente: valida campos, hashea password con bcrypt y
// persiste. Devuelve domain.ErrEmailAlreadyExists si el email ya existe. El
// estado inicial depende de AutoApprove. Emite token de sesión aunque el
// cliente quede pendiente: puede consultar su cuenta, no comprar.
func (uc *AuthUseCase) RegisterCliente(in dto.RegisterClientRequest) (*dto.ClientSessionResponse, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.clientRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	estado := entity.ClientePendiente
	if uc.cfg.AutoApprove {
		estado = entity.ClienteActivo
	}
	now := time.Now()
	client := &entity.Client{
		Name:         in.Name,
		Company:      in.Company,
		TaxID:        in.TaxID,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Estado:       estado,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return uc.sessionFor(client)
}

// LoginCliente verifica email/password con bcrypt y emite token. Un cliente
// rechazado no puede iniciar sesión (error distinto al de credenciales); uno
// pendiente sí, aunque no podrá colocar pedidos.
func (uc *AuthUseCase) LoginCliente(in dto.ClientLoginRequest) (*dto.ClientSessionResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if client == nil {
		uc.sleepOnFailure()
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(in.Password)); err != nil {
		uc.sleepOnFailure()
		return nil, domain.ErrUnauthorized
	}
	if client.Estado == entity.ClienteRechazado {
		return nil, domain.ErrClienteRechazado
	}
	return uc.sessionFor(client)
}

func (uc *AuthUseCase) sessionFor(client *entity.Client) (*dto.ClientSessionResponse, error) {
	token, err := jwt.GenerateCliente(uc.cfg.JWTSecret, client.ID, client.Email, uc.cfg.JWTIssuer, uc.cfg.JWTExpHours)
	if err != nil {
		return nil, err
	}
	return &dto.ClientSessionResponse{
		Token:     token,
		ExpiresIn: uc.expiresIn(),
		Client:    *ToClientResponse(client),
	}, nil
}

func (uc *AuthUseCase) sleepOnFailure() {
	if uc.cfg.FailDelay > 0 {
		time.Sleep(uc.cfg.FailDelay)
	}
}

// ToClientResponse proyecta la entidad al DTO público, sin el hash.
func ToClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Company:   c.Company,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		Estado:    c.Estado,
		CreatedAt: c.CreatedAt,
	}
}
