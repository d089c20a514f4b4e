package helpers

import (
	"net/http"
	"strings"
	"time"
)

// Nombres de las cookies de sesión (mismos nombres que las claves del body).
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// CookieConfig agrupa los atributos de transporte que vienen de config.
type CookieConfig struct {
	Domain     string
	SameSite   string
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func ParseSameSite(s string) http.SameSite {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// BuildCookie arma una cookie httpOnly con los atributos configurados.
func BuildCookie(cfg CookieConfig, name, value string, ttl time.Duration) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: ParseSameSite(cfg.SameSite),
	}
	if strings.TrimSpace(cfg.Domain) != "" {
		ck.Domain = cfg.Domain
	}
	if ttl > 0 {
		ck.Expires = time.Now().Add(ttl).UTC()
		ck.MaxAge = int(ttl.Seconds())
	}
	return ck
}

// SetTokenCookies setea el par access/refresh en la respuesta.
func SetTokenCookies(w http.ResponseWriter, cfg CookieConfig, accessToken, refreshToken string) {
	http.SetCookie(w, BuildCookie(cfg, AccessTokenCookie, accessToken, cfg.AccessTTL))
	http.SetCookie(w, BuildCookie(cfg, RefreshTokenCookie, refreshToken, cfg.RefreshTTL))
}

// ClearTokenCookies borra ambas cookies (MaxAge -1 + Expires epoch).
func ClearTokenCookies(w http.ResponseWriter, cfg CookieConfig) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   cfg.Secure,
			SameSite: ParseSameSite(cfg.SameSite),
			Domain:   strings.TrimSpace(cfg.Domain),
			Expires:  time.Unix(0, 0).UTC(),
			MaxAge:   -1,
		})
	}
}
