package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"brewheaven-api/datasource"
	"brewheaven-api/models"
)

// DevJWTSecret signs tokens when JWT_SECRET is unset. Fine for local runs only.
const DevJWTSecret = "brewheaven_dev_secret_change_me"

type Config struct {
	Port           string
	GinMode        string
	Preference     datasource.BackendPreference
	RequestTimeout time.Duration

	DBDriver    string
	DatabaseURL string

	MongoURI      string
	MongoDatabase string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout time.Duration

	AMQPURL      string
	AMQPExchange string

	JWTSecret         string
	StaffEmail        string
	StaffPasswordHash string
}

var keys = []string{
	"PORT", "GIN_MODE", "BACKEND_PREFERENCE", "REQUEST_TIMEOUT",
	"DB_DRIVER", "DATABASE_URL",
	"MONGO_URI", "MONGO_DATABASE",
	"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_TIMEOUT",
	"AMQP_URL", "AMQP_EXCHANGE",
	"JWT_SECRET", "STAFF_EMAIL", "STAFF_PASSWORD_HASH",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("BACKEND_PREFERENCE", "relational_then_document")
	v.SetDefault("REQUEST_TIMEOUT", 15*time.Second)
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_URL", "brewheaven.db")
	v.SetDefault("MONGO_DATABASE", "brewheaven")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("GEMINI_TIMEOUT", 10*time.Second)
	v.SetDefault("AMQP_EXCHANGE", "brewheaven.orders")
	v.SetDefault("JWT_SECRET", DevJWTSecret)
}

// Load reads configuration from defaults, the optional YAML file at path and
// the environment, in increasing precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	pref, err := datasource.ParsePreference(v.GetString("BACKEND_PREFERENCE"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:              v.GetString("PORT"),
		GinMode:           v.GetString("GIN_MODE"),
		Preference:        pref,
		RequestTimeout:    v.GetDuration("REQUEST_TIMEOUT"),
		DBDriver:          strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		MongoURI:          v.GetString("MONGO_URI"),
		MongoDatabase:     v.GetString("MONGO_DATABASE"),
		GeminiAPIKey:      v.GetString("GEMINI_API_KEY"),
		GeminiModel:       v.GetString("GEMINI_MODEL"),
		GeminiTimeout:     v.GetDuration("GEMINI_TIMEOUT"),
		AMQPURL:           v.GetString("AMQP_URL"),
		AMQPExchange:      v.GetString("AMQP_EXCHANGE"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		StaffEmail:        v.GetString("STAFF_EMAIL"),
		StaffPasswordHash: v.GetString("STAFF_PASSWORD_HASH"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (want sqlite or postgres)", c.DBDriver)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	return nil
}

// RelationalEnabled reports whether backend A should be opened.
func (c *Config) RelationalEnabled() bool {
	return c.DatabaseURL != "" && c.Preference != datasource.DocumentOnly
}

// DocumentEnabled reports whether backend B should be opened.
func (c *Config) DocumentEnabled() bool {
	return c.MongoURI != "" && c.Preference != datasource.RelationalOnly
}

func (c *Config) GeminiEnabled() bool { return c.GeminiAPIKey != "" }

func (c *Config) EventsEnabled() bool { return c.AMQPURL != "" }

// Staff returns the configured operator account, or false when staff login
// is not set up.
func (c *Config) Staff() (models.Staff, bool) {
	if c.StaffEmail == "" || c.StaffPasswordHash == "" {
		return models.Staff{}, false
	}
	return models.Staff{
		Email:        strings.ToLower(c.StaffEmail),
		PasswordHash: c.StaffPasswordHash,
		Role:         models.RoleStaff,
	}, true
}

func (c *Config) UsingDevSecret() bool { return c.JWTSecret == DevJWTSecret }
