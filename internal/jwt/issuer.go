// Package jwt firma y verifica los dos tipos de token de sesión.
// Access y refresh usan secretos HMAC independientes y TTLs distintos:
// el access es prueba de identidad autocontenida (sub + exp + iat), el
// refresh solo es válido si además coincide con el guardado en el store.
package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims son las claims de ambos tipos de token. Username solo viaja en
// el access token.
type Claims struct {
	Username string `json:"username,omitempty"`
	jwtv5.RegisteredClaims
}

// Issuer firma con HS256. Los secretos vienen de configuración y nunca
// se loguean.
type Issuer struct {
	Iss           string
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration // escala minutos
	RefreshTTL    time.Duration // escala días
}

func NewIssuer(iss, accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 240 * time.Hour
	}
	return &Issuer{
		Iss:           iss,
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}
}

// SignAccess emite el access token para sub.
func (i *Issuer) SignAccess(sub, username string) (string, time.Time, error) {
	return i.sign(sub, username, i.AccessSecret, i.AccessTTL)
}

// SignRefresh emite el refresh token para sub. Solo lleva claims
// registradas: la identidad extra no hace falta en este camino.
func (i *Issuer) SignRefresh(sub string) (string, time.Time, error) {
	return i.sign(sub, "", i.RefreshSecret, i.RefreshTTL)
}

func (i *Issuer) sign(sub, username string, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)

	claims := Claims{
		Username: username,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    i.Iss,
			Subject:   sub,
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
		},
	}

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := tk.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, exp, nil
}

// ParseAccess valida firma y vigencia del access token.
func (i *Issuer) ParseAccess(raw string) (*Claims, error) {
	return i.parse(raw, i.AccessSecret)
}

// ParseRefresh valida firma y vigencia del refresh token. La igualdad
// contra el token persistido la chequea el caller: acá solo criptografía.
func (i *Issuer) ParseRefresh(raw string) (*Claims, error) {
	return i.parse(raw, i.RefreshSecret)
}

func (i *Issuer) parse(raw string, secret []byte) (*Claims, error) {
	opts := []jwtv5.ParserOption{
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
	}
	if i.Iss != "" {
		opts = append(opts, jwtv5.WithIssuer(i.Iss))
	}

	var claims Claims
	tk, err := jwtv5.ParseWithClaims(raw, &claims, func(t *jwtv5.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !tk.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
