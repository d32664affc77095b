package dto

// AdminLoginRequest credenciales del panel de administración.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLoginResponse token de sesión del admin.
type AdminLoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"` // segundos de vida del token
}

// TokenCheckResponse resultado de la verificación de un token.
type TokenCheckResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
	ClientID int64  `json:"clientId,omitempty"`
	Email    string `json:"email,omitempty"`
}
