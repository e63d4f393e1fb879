package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la sesión.
// Se añade Rol para que el middleware RBAC pueda tomar decisiones sin consultar
// al servicio de usuarios en cada petición.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Documento string `json:"documento"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Rol       string `json:"rol"` // "cliente" | "laboratorista" | "administrador" | "super_admin"
}

// SessionData datos de sesión extraídos de un token válido.
type SessionData struct {
	UserID    string
	Documento string
	Nombre    string
	Email     string
	Rol       string
}

// Generate genera un token JWT firmado con los datos de sesión.
func Generate(secret string, data SessionData, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   data.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    data.UserID,
		Documento: data.Documento,
		Nombre:    data.Nombre,
		Email:     data.Email,
		Rol:       data.Rol,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve los datos de sesión.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*SessionData, error) {
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
	return &SessionData{
		UserID:    claims.UserID,
		Documento: claims.Documento,
		Nombre:    claims.Nombre,
		Email:     claims.Email,
		Rol:       claims.Rol,
	}, nil
}
