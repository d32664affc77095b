package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles reconocidos en los tokens de la aplicación.
const (
	RoleAdmin   = "admin"
	RoleCliente = "cliente"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// El esquema es cerrado: Role discrimina entre las dos identidades posibles,
// Username identifica al admin y ClientID/Email al cliente.
type Claims struct {
	jwt.RegisteredClaims
	Role     string `json:"role"`               // "admin" | "cliente"
	Username string `json:"username,omitempty"` // solo admin
	ClientID int64  `json:"clientId,omitempty"` // solo cliente
	Email    string `json:"email,omitempty"`    // solo cliente
}

// GenerateAdmin genera un token firmado HS256 con rol admin.
func GenerateAdmin(secret, username, issuer string, expHours int) (string, error) {
	return generate(secret, Claims{
		Role:     RoleAdmin,
		Username: username,
	}, issuer, expHours)
}

// GenerateCliente genera un token firmado HS256 con rol cliente.
func GenerateCliente(secret string, clientID int64, email, issuer string, expHours int) (string, error) {
	return generate(secret, Claims{
		Role:     RoleCliente,
		ClientID: clientID,
		Email:    email,
	}, issuer, expHours)
}

func generate(secret string, claims Claims, issuer string, expHours int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expHours) * time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve sus claims. Es una función total sobre strings
// arbitrarios: firma incorrecta, token malformado o expirado devuelven error,
// nunca panic. El método de firma está fijado a HMAC, sin negociación.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
