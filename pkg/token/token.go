// Package token emite y valida el handle de sesión que la capa de
// presentación transporta entre peticiones. Hace de stub del colaborador
// de identidad externo: no implementa ningún protocolo de autenticación,
// solo un token firmado que identifica a la cuenta de la sesión en curso.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar más los campos propios del portal.
// Role viaja como claim informativo (diagnóstico, clientes externos); la
// autorización siempre consulta el estado de sesión vigente, nunca el token.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
	Role      string `json:"role"` // "manufacturer" | "brand" | "retailer"
}

// Generate genera un token de sesión firmado que incluye accountID y role.
func Generate(secret, accountID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		AccountID: accountID,
		Role:      role,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// Parse valida el token y devuelve accountID y role. Retorna error si el
// token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (accountID, role string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("token: secret vacío")
	}
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return "", "", fmt.Errorf("claims inválidos")
	}
	return claims.AccountID, claims.Role, nil
}
