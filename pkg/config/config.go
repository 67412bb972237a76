package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Motores de páginas fijas.
const (
	EngineMaroto = "maroto"
	EngineChrome = "chrome"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Session SessionConfig
	Export  ExportConfig
	Chrome  ChromeConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	ReadTimeout time.Duration
	SwaggerFile string // vacío o inexistente = sin Swagger UI
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionConfig sesiones del editor (solo memoria).
type SessionConfig struct {
	TTL           time.Duration // inactividad tras la que expira una sesión
	DefaultLocale string
}

// ExportConfig exportaciones.
type ExportConfig struct {
	PDFEngine string        // maroto | chrome
	Timeout   time.Duration // espera máxima de una exportación PDF por request
}

// ChromeConfig motor chrome (solo con PDF_ENGINE=chrome).
type ChromeConfig struct {
	RemoteURL string // ws://host:9222 de un Chrome ya levantado; vacío = proceso local
	Timeout   time.Duration
	NoSandbox bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, PDF_ENGINE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración desde una instancia ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "facturador"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			ReadTimeout: getDuration(v, "HTTP_READ_TIMEOUT", 10*time.Second),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Session: SessionConfig{
			TTL:           getDuration(v, "SESSION_TTL", 30*time.Minute),
			DefaultLocale: getString(v, "DEFAULT_LOCALE", "en"),
		},
		Export: ExportConfig{
			PDFEngine: strings.ToLower(getString(v, "PDF_ENGINE", EngineMaroto)),
			Timeout:   getDuration(v, "EXPORT_TIMEOUT", 45*time.Second),
		},
		Chrome: ChromeConfig{
			RemoteURL: getString(v, "CHROME_REMOTE_URL", ""),
			Timeout:   getDuration(v, "CHROME_TIMEOUT", 30*time.Second),
			NoSandbox: getBool(v, "CHROME_NO_SANDBOX", false),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rechaza combinaciones que la aplicación no puede arrancar.
func (c *Config) Validate() error {
	switch c.Export.PDFEngine {
	case EngineMaroto, EngineChrome:
	default:
		return fmt.Errorf("config: PDF_ENGINE %q no soportado (maroto|chrome)", c.Export.PDFEngine)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: HTTP_PORT %d fuera de rango", c.HTTP.Port)
	}
	if c.Export.Timeout <= 0 {
		return fmt.Errorf("config: EXPORT_TIMEOUT debe ser positivo")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL debe ser positivo")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

// getDuration acepta "90s", "30m" o un número de segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	s := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
