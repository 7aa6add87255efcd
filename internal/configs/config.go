package configs

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type RESTconfig struct {
	PORT           string
	AllowedOrigins []string
}

type StorageConfig struct {
	Driver string
}

type MongoConfig struct {
	URI      string
	Database string
}

// DBconfig хранит конфигурацию для PostgreSQL
type DBconfig struct {
	URL      string
	MaxConns int32
}

type RabbitMQConfig struct {
	Enabled bool
	URL     string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName       string
	Rest          RESTconfig
	Storage       StorageConfig
	Mongo         MongoConfig
	Database      DBconfig
	RabbitMQ      RabbitMQConfig
	FluentBit     FluentBitConfig
	StdoutLogger  StdoutLogConfig
	SeedOnStartup bool
}

// LoadConfig загружает конфигурацию из переменных окружения.
// .env необязателен: без него используются переменные процесса.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		if len(envPath) > 0 || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
		}
		log.Println("No .env file found, using environment variables")
	}

	cfg := &AppConfig{
		AppName: getEnvAsString("APP_NAME", "property-service"),
		Rest: RESTconfig{
			PORT:           getEnvAsString("PORT", "8080"),
			AllowedOrigins: splitList(getEnvAsString("CORS_ALLOWED_ORIGINS", "*")),
		},
		Storage: StorageConfig{Driver: strings.ToLower(getEnvAsString("STORAGE_DRIVER", StorageMongo))},
		Mongo: MongoConfig{
			URI:      getEnvAsString("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnvAsString("MONGODB_DATABASE", "MillionPropertiesDB"),
		},
		Database: DBconfig{
			URL:      os.Getenv("DATABASE_URL"),
			MaxConns: int32(getEnvAsInt("DATABASE_MAX_CONNS", 10)),
		},
		RabbitMQ: RabbitMQConfig{
			Enabled: getEnvAsBool("RABBITMQ_ENABLED", false),
			URL:     os.Getenv("RABBITMQ_URL"),
		},
		StdoutLogger:  StdoutLogConfig{Level: getEnvAsString("STDOUT_LOG_LEVEL", "debug")},
		SeedOnStartup: getEnvAsBool("SEED_ON_STARTUP", false),
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.Storage.Driver {
	case StorageMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGODB_URI environment variable is required")
		}
	case StoragePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for STORAGE_DRIVER=postgres")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (expected mongo, postgres or memory)", c.Storage.Driver)
	}

	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
