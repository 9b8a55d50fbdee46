// Package jwt emite y valida los tokens de sesión del API de ventas.
//
// El token es la única fuente de identidad que ven las capas HTTP: lleva el
// usuario que abrió sesión, la empresa (tenant) por la que se filtra toda
// consulta y el rol con el que el middleware autoriza, de modo que procesar
// una petición autenticada nunca requiere volver a la base de datos.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims de sesión. Subject duplica UserID para que los inspectores JWT
// estándar muestren algo útil.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`    // usuario que abrió sesión
	CompanyID string `json:"company_id"` // tenant: toda consulta filtra por él
	Role      string `json:"role"`       // "admin" | "vendedor"
}

var errEmptySecret = errors.New("jwt: secret vacío")

// Generate firma un token HS256 con la identidad de sesión, vigente por
// expMinutes a partir de ahora.
func Generate(secret, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", errEmptySecret
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
	})
	return token.SignedString([]byte(secret))
}

// Parse valida firma y vigencia y devuelve la identidad de sesión. Solo se
// acepta HS256: un token firmado con otro algoritmo (incluido "none") se
// rechaza antes de mirar los claims, y un token sin expiración también.
func Parse(secret, tokenString string) (userID, companyID, role string, err error) {
	if secret == "" {
		return "", "", "", errEmptySecret
	}
	var claims Claims
	_, err = jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", "", "", fmt.Errorf("token de sesión inválido: %w", err)
	}
	return claims.UserID, claims.CompanyID, claims.Role, nil
}
