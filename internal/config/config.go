// Package config carga la configuración desde YAML con overrides por
// variables de entorno. El YAML es opcional: con solo ENV también funciona.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ReadTimeout        string   `yaml:"read_timeout"`
		WriteTimeout       string   `yaml:"write_timeout"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Storage struct {
		// mongo (default) | pg
		Driver string `yaml:"driver"`
		Mongo  struct {
			URI      string `yaml:"uri"`
			Database string `yaml:"database"`
		} `yaml:"mongo"`
		PG struct {
			DSN      string `yaml:"dsn"`
			MaxConns int    `yaml:"max_conns"`
		} `yaml:"pg"`
	} `yaml:"storage"`

	JWT struct {
		Issuer string `yaml:"issuer"`
		// Secretos HMAC independientes por clase de token.
		AccessSecret  string `yaml:"access_secret"`
		RefreshSecret string `yaml:"refresh_secret"`
		AccessTTL     string `yaml:"access_ttl"`  // escala minutos (ej: 15m)
		RefreshTTL    string `yaml:"refresh_ttl"` // escala días (ej: 240h)
	} `yaml:"jwt"`

	Cookies struct {
		Domain   string `yaml:"domain"`
		SameSite string `yaml:"samesite"`
		// Secure es puntero para distinguir "no configurado" (default
		// true) de un false explícito (solo dev sin TLS).
		Secure *bool `yaml:"secure"`
	} `yaml:"cookies"`

	Media struct {
		UploadURL string `yaml:"upload_url"`
		APIKey    string `yaml:"api_key"`
		Timeout   string `yaml:"timeout"`
		// Directorio temporal donde el controller deja los archivos subidos
		// antes de empujarlos al servicio remoto.
		TempDir       string `yaml:"temp_dir"`
		MaxUploadSize int64  `yaml:"max_upload_size"`
	} `yaml:"media"`
}

// Defaults razonables para dev. En prod los secretos vienen por ENV sí o sí.
const (
	defaultAddr       = ":8080"
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 240 * time.Hour // 10 días
	defaultMediaTO    = 30 * time.Second
	defaultMaxUpload  = 8 << 20 // 8MB por archivo
)

// Load lee el YAML (si path no está vacío y existe) y aplica overrides de ENV.
func Load(path string) (*Config, error) {
	var c Config

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	c.applyEnvOverrides()
	c.applyDefaults()

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "mongo"
	}
	if c.Storage.Mongo.Database == "" {
		c.Storage.Mongo.Database = "accountd"
	}
	if c.Media.TempDir == "" {
		c.Media.TempDir = os.TempDir()
	}
	if c.Media.MaxUploadSize <= 0 {
		c.Media.MaxUploadSize = defaultMaxUpload
	}
}

func (c *Config) validate() error {
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		return fmt.Errorf("config: jwt access_secret and refresh_secret are required")
	}
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return fmt.Errorf("config: jwt access_secret and refresh_secret must differ")
	}
	return nil
}

// CookieSecure indica si las cookies de sesión llevan el atributo
// Secure. Default true: hay que pedir explícitamente cookies inseguras.
func (c *Config) CookieSecure() bool {
	return c.Cookies.Secure == nil || *c.Cookies.Secure
}

// AccessTTL devuelve la vigencia del access token.
func (c *Config) AccessTTL() time.Duration { return durOr(c.JWT.AccessTTL, defaultAccessTTL) }

// RefreshTTL devuelve la vigencia del refresh token.
func (c *Config) RefreshTTL() time.Duration { return durOr(c.JWT.RefreshTTL, defaultRefreshTTL) }

// MediaTimeout devuelve el timeout del cliente de upload.
func (c *Config) MediaTimeout() time.Duration { return durOr(c.Media.Timeout, defaultMediaTO) }

// ReadTimeout / WriteTimeout del http.Server.
func (c *Config) ReadTimeout() time.Duration  { return durOr(c.Server.ReadTimeout, 10*time.Second) }
func (c *Config) WriteTimeout() time.Duration { return durOr(c.Server.WriteTimeout, 30*time.Second) }

func durOr(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil && d > 0 {
		return d
	}
	return def
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt64(key string) (int64, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides pisa el YAML con variables de entorno.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}

	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("MONGODB_URI"); ok {
		c.Storage.Mongo.URI = v
	}
	if v, ok := getEnvStr("MONGODB_DATABASE"); ok {
		c.Storage.Mongo.Database = v
	}
	if v, ok := getEnvStr("PG_DSN"); ok {
		c.Storage.PG.DSN = v
	}

	if v, ok := getEnvStr("JWT_ISSUER"); ok {
		c.JWT.Issuer = v
	}
	if v, ok := getEnvStr("ACCESS_TOKEN_SECRET"); ok {
		c.JWT.AccessSecret = v
	}
	if v, ok := getEnvStr("REFRESH_TOKEN_SECRET"); ok {
		c.JWT.RefreshSecret = v
	}
	if v, ok := getEnvStr("ACCESS_TOKEN_TTL"); ok {
		c.JWT.AccessTTL = v
	}
	if v, ok := getEnvStr("REFRESH_TOKEN_TTL"); ok {
		c.JWT.RefreshTTL = v
	}

	if v, ok := getEnvStr("COOKIE_DOMAIN"); ok {
		c.Cookies.Domain = v
	}
	if v, ok := getEnvStr("COOKIE_SAMESITE"); ok {
		c.Cookies.SameSite = v
	}
	if v, ok := getEnvBool("COOKIE_SECURE"); ok {
		c.Cookies.Secure = &v
	}

	if v, ok := getEnvStr("MEDIA_UPLOAD_URL"); ok {
		c.Media.UploadURL = v
	}
	if v, ok := getEnvStr("MEDIA_API_KEY"); ok {
		c.Media.APIKey = v
	}
	if v, ok := getEnvStr("MEDIA_TEMP_DIR"); ok {
		c.Media.TempDir = v
	}
	if v, ok := getEnvInt64("MEDIA_MAX_UPLOAD_SIZE"); ok {
		c.Media.MaxUploadSize = v
	}
}
