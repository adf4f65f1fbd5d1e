// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Registry      RegistryConfig     `mapstructure:"registry"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port           int    `mapstructure:"port"`
	ReadTimeout    int    `mapstructure:"read_timeout"`    // milliseconds
	WriteTimeout   int    `mapstructure:"write_timeout"`   // milliseconds
	StaticRedirect string `mapstructure:"static_redirect"` // target of GET /
}

// RegistryConfig selects the roster backend and seed source.
type RegistryConfig struct {
	// Backend is one of "memory", "redis", "postgres".
	Backend string `mapstructure:"backend"`
	// SeedFile optionally points at a JSON activity catalog; empty means
	// the built-in Mergington seed.
	SeedFile string `mapstructure:"seed_file"`
	// EnforceCapacity rejects signups once max_participants is reached.
	// Off by default: capacity is advisory in the shipped contract.
	EnforceCapacity bool `mapstructure:"enforce_capacity"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NotificationConfig wires the post-signup notifier.
type NotificationConfig struct {
	// Mode is one of "none", "ses", "sns".
	Mode     string `mapstructure:"mode"`
	Region   string `mapstructure:"region"`
	Sender   string `mapstructure:"sender"`    // SES from-address
	TopicARN string `mapstructure:"topic_arn"` // SNS topic
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
