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
	App    AppConfig
	DB     DBConfig
	HTTP   HTTPConfig
	Import ImportConfig
	Seed   SeedConfig
	Update UpdateConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// Drivers de almacenamiento soportados.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver      string // postgres | memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	AutoMigrate bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
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

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host             string
	Port             int
	CORSAllowOrigins string // lista separada por comas; "*" permite todo
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ImportConfig parámetros de la carga masiva de productos por CSV.
type ImportConfig struct {
	FallbackCategory string // categoría usada si la fila no trae "category"
	MaxUploadBytes   int
}

// SeedConfig rutas de los CSV de arranque (categories, products, sales).
type SeedConfig struct {
	CategoriesPath string
	ProductsPath   string
	SalesPath      string
	OnStart        bool // sembrar al iniciar el servidor (los errores solo se registran)
}

// UpdateConfig indica por entidad si PUT acepta actualizaciones parciales.
type UpdateConfig struct {
	PartialCategories bool
	PartialProducts   bool
	PartialSales      bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, HTTP_PORT, etc.
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

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "ventas-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(getString(v, "DB_DRIVER", DriverPostgres)),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "ventas"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
		},
		HTTP: HTTPConfig{
			Host:             getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:             getInt(v, "HTTP_PORT", 8000),
			CORSAllowOrigins: getString(v, "CORS_ALLOW_ORIGINS", "*"),
		},
		Import: ImportConfig{
			FallbackCategory: getString(v, "IMPORT_FALLBACK_CATEGORY", "General"),
			MaxUploadBytes:   getInt(v, "IMPORT_MAX_UPLOAD_BYTES", 10<<20),
		},
		Seed: SeedConfig{
			CategoriesPath: getString(v, "SEED_CATEGORIES_PATH", "../data/categories.csv"),
			ProductsPath:   getString(v, "SEED_PRODUCTS_PATH", "../data/products.csv"),
			SalesPath:      getString(v, "SEED_SALES_PATH", "../data/sales.csv"),
			OnStart:        getBool(v, "SEED_ON_START", false),
		},
		Update: UpdateConfig{
			PartialCategories: getBool(v, "UPDATE_PARTIAL_CATEGORIES", false),
			PartialProducts:   getBool(v, "UPDATE_PARTIAL_PRODUCTS", false),
			PartialSales:      getBool(v, "UPDATE_PARTIAL_SALES", true),
		},
	}

	if cfg.DB.Driver != DriverPostgres && cfg.DB.Driver != DriverMemory {
		return nil, fmt.Errorf("DB_DRIVER inválido: %q (postgres|memory)", cfg.DB.Driver)
	}
	if strings.TrimSpace(cfg.Import.FallbackCategory) == "" {
		return nil, fmt.Errorf("IMPORT_FALLBACK_CATEGORY no puede estar vacío")
	}
	if cfg.Import.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("IMPORT_MAX_UPLOAD_BYTES debe ser positivo")
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
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		switch val := v.Get(key).(type) {
		case bool:
			return val
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(val))
			if err != nil {
				return def
			}
			return b
		default:
			return v.GetBool(key)
		}
	}
	return def
}
