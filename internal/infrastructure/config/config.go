package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the decoded form of config.toml plus EYEDIST_* overrides
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Search    SearchConfig    `mapstructure:"search"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Printing  PrintingConfig  `mapstructure:"printing"`
	Swagger   SwaggerConfig   `mapstructure:"swagger"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Env         string `mapstructure:"env"`
	Port        string `mapstructure:"port"`
	CompanyName string `mapstructure:"company_name"` // printed on invoices
}

func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // postgres, mysql, sqlite
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"` // 0 picks the driver's usual port
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"` // file path for sqlite
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
	MigrationsPath  string `mapstructure:"migrations_path"`
	LogFullSQL      bool   `mapstructure:"log_full_sql"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret                 string        `mapstructure:"secret"`
	RefreshSecret          string        `mapstructure:"refresh_secret"`
	AccessTokenExpiration  time.Duration `mapstructure:"access_token_expiration"`
	RefreshTokenExpiration time.Duration `mapstructure:"refresh_token_expiration"`
	Issuer                 string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, or file path
}

type HTTPConfig struct {
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	MaxBodySize       int64         `mapstructure:"max_body_size"`
	RateLimitEnabled  bool          `mapstructure:"rate_limit_enabled"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
	// An empty origin list allows no cross-origin requests.
	CORSAllowOrigins []string `mapstructure:"cors_allow_origins"`
	CORSAllowMethods []string `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders []string `mapstructure:"cors_allow_headers"`
	TrustedProxies   []string `mapstructure:"trusted_proxies"`
}

// StorageConfig selects where uploaded bills and product images go
type StorageConfig struct {
	Driver        string `mapstructure:"driver"` // local, s3
	LocalDir      string `mapstructure:"local_dir"`
	PublicPrefix  string `mapstructure:"public_prefix"` // URL prefix local files are served under
	MaxUploadSize int64  `mapstructure:"max_upload_size"`
	S3Endpoint    string `mapstructure:"s3_endpoint"`
	S3Region      string `mapstructure:"s3_region"`
	S3Bucket      string `mapstructure:"s3_bucket"`
	S3AccessKey   string `mapstructure:"s3_access_key"`
	S3SecretKey   string `mapstructure:"s3_secret_key"`
	S3PathStyle   bool   `mapstructure:"s3_path_style"`
}

// SearchConfig configures the Elasticsearch product index
type SearchConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

// KafkaConfig configures domain event publishing
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// PrintingConfig configures invoice PDF rendering through headless Chrome
type PrintingConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	RemoteURL string        `mapstructure:"remote_url"` // ws:// URL of an already running Chrome
	NoSandbox bool          `mapstructure:"no_sandbox"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type SwaggerConfig struct {
	Enabled     bool     `mapstructure:"enabled"`
	RequireAuth bool     `mapstructure:"require_auth"`
	AllowedIPs  []string `mapstructure:"allowed_ips"`
}

// TelemetryConfig covers OpenTelemetry export and Pyroscope profiling
type TelemetryConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	CollectorEndpoint string        `mapstructure:"collector_endpoint"`
	SamplingRatio     float64       `mapstructure:"sampling_ratio"`
	ServiceName       string        `mapstructure:"service_name"` // defaults to app.name
	Insecure          bool          `mapstructure:"insecure"`
	MetricsEnabled    bool          `mapstructure:"metrics_enabled"`
	LogsEnabled       bool          `mapstructure:"logs_enabled"`
	DBTraceEnabled    bool          `mapstructure:"db_trace_enabled"`
	DBSlowQueryThresh time.Duration `mapstructure:"db_slow_query_threshold"`
	ProfilingEnabled  bool          `mapstructure:"profiling_enabled"`
	PyroscopeURL      string        `mapstructure:"pyroscope_url"`
}

// defaults registers every key with viper. Keys without a useful default
// are still listed so AutomaticEnv can find them during Unmarshal.
var defaults = map[string]any{
	"app.name":         "eyedist-backend",
	"app.env":          "development",
	"app.port":         "8080",
	"app.company_name": "Eyewear Distribution",

	"database.driver":             "postgres",
	"database.host":               "localhost",
	"database.port":               0,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "eyedist",
	"database.sslmode":            "disable",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,
	"database.auto_migrate":       false,
	"database.migrations_path":    "migrations",
	"database.log_full_sql":       false,

	"redis.enabled":   false,
	"redis.host":      "localhost",
	"redis.port":      6379,
	"redis.password":  "",
	"redis.db":        0,
	"redis.cache_ttl": 30 * time.Minute,

	"jwt.secret":                   "",
	"jwt.refresh_secret":           "",
	"jwt.access_token_expiration":  15 * time.Minute,
	"jwt.refresh_token_expiration": 7 * 24 * time.Hour,
	"jwt.issuer":                   "eyedist-backend",

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout":        15 * time.Second,
	"http.write_timeout":       30 * time.Second,
	"http.idle_timeout":        60 * time.Second,
	"http.max_body_size":       12 << 20,
	"http.rate_limit_enabled":  false,
	"http.rate_limit_requests": 100,
	"http.rate_limit_window":   time.Minute,
	"http.cors_allow_origins":  []string{},
	"http.cors_allow_methods":  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	"http.cors_allow_headers":  []string{"Content-Type", "Authorization", "X-Request-ID", "Idempotency-Key"},
	"http.trusted_proxies":     []string{},

	"storage.driver":          "local",
	"storage.local_dir":       "uploads",
	"storage.public_prefix":   "/uploads",
	"storage.max_upload_size": 5 << 20,
	"storage.s3_endpoint":     "",
	"storage.s3_region":       "us-east-1",
	"storage.s3_bucket":       "",
	"storage.s3_access_key":   "",
	"storage.s3_secret_key":   "",
	"storage.s3_path_style":   false,

	"search.enabled":   false,
	"search.addresses": []string{"http://localhost:9200"},
	"search.username":  "",
	"search.password":  "",
	"search.index":     "products",

	"kafka.enabled": false,
	"kafka.brokers": []string{"localhost:9092"},
	"kafka.topic":   "eyedist.domain-events",

	"printing.enabled":    false,
	"printing.remote_url": "",
	"printing.no_sandbox": false,
	"printing.timeout":    30 * time.Second,

	"swagger.enabled":      false,
	"swagger.require_auth": false,
	"swagger.allowed_ips":  []string{},

	"telemetry.enabled":                 false,
	"telemetry.collector_endpoint":      "localhost:4317",
	"telemetry.sampling_ratio":          1.0,
	"telemetry.service_name":            "",
	"telemetry.insecure":                false,
	"telemetry.metrics_enabled":         false,
	"telemetry.logs_enabled":            false,
	"telemetry.db_trace_enabled":        false,
	"telemetry.db_slow_query_threshold": 200 * time.Millisecond,
	"telemetry.profiling_enabled":       false,
	"telemetry.pyroscope_url":           "http://localhost:4040",
}

const devJWTSecret = "dev-only-secret-change-me-0123456789"

// Load reads configuration. Priority (highest first):
//  1. EYEDIST_* environment variables (EYEDIST_DATABASE_PASSWORD), including
//     ones set by a .env file in the working directory
//  2. config.toml from ., ./config or /etc/eyedist
//  3. built-in defaults
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/eyedist")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("EYEDIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.derive()
	return &cfg, nil
}

// derive fills values that depend on other settings
func (c *Config) derive() {
	if c.Database.Port == 0 {
		c.Database.Port = 5432
		if c.Database.Driver == "mysql" {
			c.Database.Port = 3306
		}
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.App.Name
	}
	if c.JWT.Secret == "" && !c.App.IsProduction() {
		c.JWT.Secret = devJWTSecret
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("database.driver must be postgres, mysql or sqlite, got %q", c.Database.Driver)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("storage.s3_bucket is required when storage.driver is s3")
		}
	default:
		return fmt.Errorf("storage.driver must be local or s3, got %q", c.Storage.Driver)
	}
	if c.Storage.MaxUploadSize <= 0 {
		return fmt.Errorf("storage.max_upload_size must be positive")
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	if c.App.IsProduction() {
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Driver != "sqlite" && c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.Driver == "postgres" && c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Database.LogFullSQL {
			return fmt.Errorf("database.log_full_sql must be disabled in production")
		}
		if c.Swagger.Enabled && !c.Swagger.RequireAuth && len(c.Swagger.AllowedIPs) == 0 {
			return fmt.Errorf("swagger endpoint must be disabled, require authentication, or have IP restriction in production")
		}
	}
	return nil
}

// DSN returns the driver-specific connection string
func (d *DatabaseConfig) DSN() string {
	switch d.Driver {
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = fmt.Sprintf("%s:%d", d.Host, d.Port)
		mc.DBName = d.DBName
		mc.ParseTime = true
		mc.Loc = time.UTC
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN()
	case "sqlite":
		return d.DBName
	}
	return d.PostgresURL()
}

// PostgresURL returns a postgres:// URL with properly escaped values
func (d *DatabaseConfig) PostgresURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
