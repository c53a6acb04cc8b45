package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Dataset   DatasetConfig
	DB        DBConfig
	GCP       GCPConfig
	GCS       GCSConfig
	BigQuery  BigQueryConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Dashboard DashboardConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Dataset.Source = strings.ToLower(strings.TrimSpace(cfg.Dataset.Source))
	if err := cfg.Dataset.validate(); err != nil {
		return nil, err
	}
	if cfg.Dataset.Source == SourceSQL {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DEMODASH_APP_ENV" default:"dev"`
	Port         string `envconfig:"DEMODASH_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"DEMODASH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DEMODASH_LOG_WARN_STACK" default:"false"`

	CORSOrigins     []string      `envconfig:"DEMODASH_CORS_ORIGINS"`
	ShutdownTimeout time.Duration `envconfig:"DEMODASH_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DatasetConfig selects where the sales records are read from at startup.
type DatasetConfig struct {
	Source      string `envconfig:"DEMODASH_DATASET_SOURCE" default:"file"`
	Path        string `envconfig:"DEMODASH_DATASET_PATH" default:"data.json"`
	Format      string `envconfig:"DEMODASH_DATASET_FORMAT"`
	Sheet       string `envconfig:"DEMODASH_DATASET_SHEET"`
	StrictDates bool   `envconfig:"DEMODASH_DATASET_STRICT_DATES" default:"false"`
}

func (d DatasetConfig) validate() error {
	switch d.Source {
	case SourceFile, SourceGCS, SourceSQL, SourceBigQuery:
	default:
		return fmt.Errorf("%s must be one of file, gcs, sql, bigquery (got %q)", EnvDatasetSource, d.Source)
	}
	if d.Format != "" {
		switch strings.ToLower(d.Format) {
		case FormatJSON, FormatCSV, FormatXLSX:
		default:
			return fmt.Errorf("%s must be one of json, csv, xlsx (got %q)", EnvDatasetFormat, d.Format)
		}
	}
	return nil
}

// ResolvedFormat returns the configured format, falling back to the path extension.
func (d DatasetConfig) ResolvedFormat() string {
	if f := strings.ToLower(strings.TrimSpace(d.Format)); f != "" {
		return f
	}
	path := strings.ToLower(d.Path)
	switch {
	case strings.HasSuffix(path, ".csv"):
		return FormatCSV
	case strings.HasSuffix(path, ".xlsx"):
		return FormatXLSX
	default:
		return FormatJSON
	}
}

type DBConfig struct {
	DSN    string `envconfig:"DEMODASH_DB_DSN"`
	Driver string `envconfig:"DEMODASH_DB_DRIVER" default:"postgres"`
	Table  string `envconfig:"DEMODASH_DB_TABLE" default:"sales_records"`

	LegacyHost     string `envconfig:"DEMODASH_DB_HOST"`
	LegacyPort     int    `envconfig:"DEMODASH_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DEMODASH_DB_USER"`
	LegacyPassword string `envconfig:"DEMODASH_DB_PASSWORD"`
	LegacyName     string `envconfig:"DEMODASH_DB_NAME"`
	LegacySSLMode  string `envconfig:"DEMODASH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DEMODASH_DB_MAX_OPEN_CONNS" default:"4"`
	MaxIdleConns    int           `envconfig:"DEMODASH_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"DEMODASH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DEMODASH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type GCPConfig struct {
	ProjectID              string `envconfig:"DEMODASH_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"DEMODASH_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"DEMODASH_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName  string        `envconfig:"DEMODASH_GCS_BUCKET_NAME"`
	Object      string        `envconfig:"DEMODASH_GCS_OBJECT"`
	ReadTimeout time.Duration `envconfig:"DEMODASH_GCS_READ_TIMEOUT" default:"30s"`
}

type BigQueryConfig struct {
	Dataset      string `envconfig:"DEMODASH_BIGQUERY_DATASET" default:"sales"`
	RecordsTable string `envconfig:"DEMODASH_BIGQUERY_RECORDS_TABLE" default:"sales_records"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DEMODASH_REDIS_URL"`
	Address      string        `envconfig:"DEMODASH_REDIS_ADDR"`
	Password     string        `envconfig:"DEMODASH_REDIS_PASSWORD"`
	DB           int           `envconfig:"DEMODASH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DEMODASH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DEMODASH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DEMODASH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DEMODASH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DEMODASH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint has been configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type RateLimitConfig struct {
	Window time.Duration `envconfig:"DEMODASH_RATE_LIMIT_WINDOW" default:"1m"`
	Limit  int           `envconfig:"DEMODASH_RATE_LIMIT_LIMIT" default:"120"`
}

type DashboardConfig struct {
	CurrencySymbol string `envconfig:"DEMODASH_CURRENCY_SYMBOL" default:"₹"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
