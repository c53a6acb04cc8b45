package config

const (
	EnvPrefix = "DEMODASH"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	SourceFile     = "file"
	SourceGCS      = "gcs"
	SourceSQL      = "sql"
	SourceBigQuery = "bigquery"

	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "DEMODASH_APP_ENV"
	EnvPort     = "DEMODASH_APP_PORT"
	EnvLogLevel = "DEMODASH_LOG_LEVEL"

	EnvDatasetSource      = "DEMODASH_DATASET_SOURCE"
	EnvDatasetPath        = "DEMODASH_DATASET_PATH"
	EnvDatasetFormat      = "DEMODASH_DATASET_FORMAT"
	EnvDatasetStrictDates = "DEMODASH_DATASET_STRICT_DATES"

	EnvDBDSN    = "DEMODASH_DB_DSN"
	EnvDBDriver = "DEMODASH_DB_DRIVER"
	EnvDBHost   = "DEMODASH_DB_HOST"
	EnvDBUser   = "DEMODASH_DB_USER"
	EnvDBName   = "DEMODASH_DB_NAME"

	EnvGCPProjectID = "DEMODASH_GCP_PROJECT_ID"
	EnvGCSBucket    = "DEMODASH_GCS_BUCKET_NAME"
	EnvGCSObject    = "DEMODASH_GCS_OBJECT"

	EnvRedisURL        = "DEMODASH_REDIS_URL"
	EnvRateLimitWindow = "DEMODASH_RATE_LIMIT_WINDOW"
	EnvRateLimitLimit  = "DEMODASH_RATE_LIMIT_LIMIT"
	EnvCurrencySymbol  = "DEMODASH_CURRENCY_SYMBOL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
