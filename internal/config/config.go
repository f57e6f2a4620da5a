package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Drivers de magasin de documents supportés
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// StoreConfig connexion au magasin de documents
type StoreConfig struct {
	Driver         string        `yaml:"driver" validate:"required,oneof=mongo postgres sqlite memory"`
	MongoURI       string        `yaml:"mongo_uri" validate:"required_if=Driver mongo"`
	Database       string        `yaml:"database" validate:"required_if=Driver mongo"`
	PostgresDSN    string        `yaml:"postgres_dsn" validate:"required_if=Driver postgres"`
	SQLitePath     string        `yaml:"sqlite_path" validate:"required_if=Driver sqlite"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" validate:"gt=0"`
}

// HTTPConfig serveur du tableau de bord
type HTTPConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// AssistantConfig agent conversationnel
type AssistantConfig struct {
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model" validate:"required"`
	MaxSteps int    `yaml:"max_steps" validate:"gte=1,lte=20"`
}

// EngineConfig moteur d'analyse
type EngineConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl" validate:"gt=0"`
}

// LogConfig journalisation
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// SeedConfig génération de données de démonstration
type SeedConfig struct {
	Years     int `yaml:"years" validate:"gte=1,lte=10"`
	Customers int `yaml:"customers" validate:"gte=1"`
}

// Config configuration complète de l'application
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	HTTP      HTTPConfig      `yaml:"http"`
	Assistant AssistantConfig `yaml:"assistant"`
	Engine    EngineConfig    `yaml:"engine"`
	Log       LogConfig       `yaml:"log"`
	Seed      SeedConfig      `yaml:"seed"`

	// EnvFileLoaded indique si un fichier .env a été trouvé
	EnvFileLoaded bool `yaml:"-"`
}

// Default retourne la configuration par défaut
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver:         DriverMongo,
			MongoURI:       "mongodb://localhost:27017",
			Database:       "jnmoveis",
			SQLitePath:     "jnmoveis.db",
			ConnectTimeout: 10 * time.Second,
		},
		HTTP:      HTTPConfig{Addr: ":8080"},
		Assistant: AssistantConfig{Model: "gpt-4o-mini", MaxSteps: 6},
		Engine:    EngineConfig{CacheTTL: 5 * time.Minute},
		Log:       LogConfig{Level: "info", Format: "text"},
		Seed:      SeedConfig{Years: 5, Customers: 300},
	}
}

// Load construit la configuration: défauts, puis fichier YAML optionnel, puis variables d'environnement.
// path vide: CONFIG_FILE est consulté; aucun fichier n'est requis.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.EnvFileLoaded = godotenv.Load() == nil

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate vérifie les contraintes déclarées sur les champs
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid configuration: %s failed on %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Store.Driver, "DOCSTORE_DRIVER")
	setString(&c.Store.MongoURI, "MONGO_URI")
	setString(&c.Store.Database, "DB_NAME")
	setString(&c.Store.SQLitePath, "SQLITE_PATH")
	setString(&c.Store.PostgresDSN, "POSTGRES_DSN")
	if c.Store.PostgresDSN == "" && os.Getenv("DB_HOST") != "" {
		c.Store.PostgresDSN = postgresDSNFromEnv()
	}
	setString(&c.HTTP.Addr, "HTTP_ADDR")
	setString(&c.Assistant.APIKey, "OPENAI_API_KEY")
	setString(&c.Assistant.Model, "OPENAI_MODEL")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if err := setInt(&c.Assistant.MaxSteps, "ASSISTANT_MAX_STEPS"); err != nil {
		return err
	}
	if err := setInt(&c.Seed.Years, "SEED_YEARS"); err != nil {
		return err
	}
	if err := setInt(&c.Seed.Customers, "SEED_CUSTOMERS"); err != nil {
		return err
	}
	if err := setDuration(&c.Engine.CacheTTL, "ENGINE_CACHE_TTL"); err != nil {
		return err
	}
	return setDuration(&c.Store.ConnectTimeout, "DOCSTORE_CONNECT_TIMEOUT")
}

// postgresDSNFromEnv reconstruit la chaîne de connexion à partir des variables DB_*
func postgresDSNFromEnv() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "jnmoveis"),
		getEnv("DB_PASSWORD", "jnmoveis"),
		getEnv("DB_NAME", "jnmoveis"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func setString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setInt(dst *int, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
