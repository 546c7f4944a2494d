package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces all environment variables of the service.
	EnvPrefix = "BACKOFFICE"

	AppEnvDev  = "development"
	AppEnvTest = "test"
	AppEnvProd = "production"

	envDBDSN = "BACKOFFICE_DB_DSN"
)

// legacy per-part variables accepted when the DSN is not set directly.
var legacyDBEnvVars = [...]string{
	"BACKOFFICE_DB_HOST",
	"BACKOFFICE_DB_PORT",
	"BACKOFFICE_DB_USER",
	"BACKOFFICE_DB_PASSWORD",
	"BACKOFFICE_DB_NAME",
}

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Password PasswordConfig
	Storage  StorageConfig
	HTTP     HTTPConfig
}

type AppConfig struct {
	Env         string `envconfig:"APP_ENV" default:"development"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"backoffice-api"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool  { return a.Env == AppEnvDev }
func (a AppConfig) IsTest() bool { return a.Env == AppEnvTest }
func (a AppConfig) IsProd() bool { return a.Env == AppEnvProd }

type DBConfig struct {
	DSN             string        `envconfig:"DB_DSN"`
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" default:"postgres"`
	Password        string        `envconfig:"DB_PASSWORD"`
	Name            string        `envconfig:"DB_NAME" default:"backoffice"`
	SSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	ConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"5m"`
	AutoMigrate     bool          `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// ensureDSN builds a postgres URL from the per-part variables when the
// DSN was not provided directly.
func (d *DBConfig) ensureDSN() {
	if d.DSN != "" {
		return
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	} else {
		u.User = url.User(d.User)
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
}

type RedisConfig struct {
	URL          string        `envconfig:"REDIS_URL"`
	Address      string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"REDIS_PASSWORD"`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

type AuthConfig struct {
	JWTSecret       string        `envconfig:"JWT_SECRET"`
	Issuer          string        `envconfig:"JWT_ISSUER" default:"backoffice-api"`
	AccessTokenTTL  time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"720h"`
	LoginRateLimit  int           `envconfig:"LOGIN_RATE_LIMIT" default:"10"`
	LoginRateWindow time.Duration `envconfig:"LOGIN_RATE_WINDOW" default:"1m"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ARGON_KEY_LEN" default:"32"`
}

type StorageConfig struct {
	Bucket          string        `envconfig:"GCS_BUCKET"`
	DocumentFolder  string        `envconfig:"GCS_DOCUMENT_FOLDER" default:"sales-documents"`
	CredentialsJSON string        `envconfig:"GCP_CREDENTIALS_JSON"`
	CredentialsFile string        `envconfig:"GCP_APPLICATION_CREDENTIALS"`
	UploadTimeout   time.Duration `envconfig:"GCS_UPLOAD_TIMEOUT" default:"30s"`
	MaxUploadBytes  int64         `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
}

type HTTPConfig struct {
	Port            int           `envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	AllowedOrigins  []string      `envconfig:"HTTP_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// Load reads configuration from the environment. It fails fast on
// missing secrets outside development.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	cfg.DB.ensureDSN()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if !c.App.IsDev() && !c.App.IsTest() {
		if c.Auth.JWTSecret == "" {
			missing = append(missing, "BACKOFFICE_JWT_SECRET")
		}
		if os.Getenv(envDBDSN) == "" && !anyLegacyDBVarSet() {
			missing = append(missing, envDBDSN)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func anyLegacyDBVarSet() bool {
	for _, key := range legacyDBEnvVars {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}
