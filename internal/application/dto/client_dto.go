package dto

import "time"

// RegisterClientRequest alta de cliente desde la tienda pública.
type RegisterClientRequest struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	TaxID    string `json:"taxId"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ClientLoginRequest credenciales de acceso del cliente.
type ClientLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ClientResponse salida de un cliente. Nunca incluye el hash de contraseña.
type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	TaxID     string    `json:"taxId"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Estado    string    `json:"status"` // pendiente | activo | rechazado
	CreatedAt time.Time `json:"createdAt"`
}

// ClientSessionResponse cliente autenticado más su token de sesión.
type ClientSessionResponse struct {
	Token     string         `json:"token"`
	ExpiresIn int64          `json:"expiresIn"`
	Client    ClientResponse `json:"client"`
}
