package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Storage StorageConfig
	DB      DBConfig
	JWT     JWTConfig
	Admin   AdminConfig
	HTTP    HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// StorageConfig selección del backend de persistencia.
type StorageConfig struct {
	Driver string // "file" (snapshot JSON) | "postgres"
	File   string // ruta del snapshot cuando Driver == "file"
}

// DBConfig configuración de PostgreSQL (solo con STORAGE_DRIVER=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN construye el connection string con URL encoding para caracteres especiales en la contraseña.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de los tokens de sesión.
type JWTConfig struct {
	Secret   string
	ExpHours int // vida del token en horas
	Issuer   string
}

// AdminConfig credenciales del administrador y política de alta de clientes.
type AdminConfig struct {
	User     string
	Password string
	// AutoApprove: si es true los clientes registrados quedan "activo" de inmediato;
	// si es false quedan "pendiente" hasta que el admin los apruebe.
	AutoApprove bool
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo .env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORAGE_DRIVER, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración .env en el directorio de trabajo
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "bielsasys-pedidos"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Driver: getString(v, "STORAGE_DRIVER", "file"),
			File:   getString(v, "DB_FILE", "db.json"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "bielsasys"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:   getString(v, "JWT_SECRET", ""),
			ExpHours: getInt(v, "JWT_EXPIRATION_HOURS", 8),
			Issuer:   getString(v, "JWT_ISSUER", "bielsasys"),
		},
		Admin: AdminConfig{
			User:        getString(v, "ADMIN_USER", "admin"),
			Password:    getString(v, "ADMIN_PASSWORD", ""),
			AutoApprove: getBool(v, "REGISTER_AUTO_APPROVE", false),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
	}

	if cfg.Storage.Driver != "file" && cfg.Storage.Driver != "postgres" {
		return nil, fmt.Errorf("config: STORAGE_DRIVER desconocido: %q", cfg.Storage.Driver)
	}

	// Fuera de development los secretos no pueden quedar en su valor vacío:
	// un JWT_SECRET vacío firma tokens falsificables y un ADMIN_PASSWORD vacío
	// dejaría la cuenta de admin sin contraseña.
	if cfg.App.Env != "development" {
		if cfg.JWT.Secret == "" {
			return nil, fmt.Errorf("config: JWT_SECRET es obligatorio con APP_ENV=%s", cfg.App.Env)
		}
		if cfg.Admin.Password == "" {
			return nil, fmt.Errorf("config: ADMIN_PASSWORD es obligatorio con APP_ENV=%s", cfg.App.Env)
		}
	}

	return cfg, nil
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
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
