package config

import (
	"strconv"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Storage   StorageConfig   `yaml:"storage"`
	Auth      AuthConfig      `yaml:"auth"`
	Booklet   BookletConfig   `yaml:"booklet"`
	Collab    CollabConfig    `yaml:"collab"`
	Assets    AssetsConfig    `yaml:"assets"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
// WriteTimeout is generous because booklet generation runs inside the request.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"10m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN              string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns         int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns         int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime  time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime  time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart   bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
	AppName          string        `yaml:"app_name"           env:"DATABASE_APP_NAME"           env-default:"gradbook"`
	StatementTimeout time.Duration `yaml:"statement_timeout"  env:"DATABASE_STATEMENT_TIMEOUT"  env-default:"30s"`
}

// RedisConfig holds the connection used for graduation change notifications.
type RedisConfig struct {
	Addr          string `yaml:"addr"           env:"REDIS_ADDR"           env-default:"localhost:6379"`
	Password      string `yaml:"password"       env:"REDIS_PASSWORD"`
	DB            int    `yaml:"db"             env:"REDIS_DB"             env-default:"0"`
	ChannelPrefix string `yaml:"channel_prefix" env:"REDIS_CHANNEL_PREFIX" env-default:"graduation:"`
}

// StorageConfig holds the S3-compatible asset store settings.
type StorageConfig struct {
	Bucket        string        `yaml:"bucket"          env:"STORAGE_BUCKET"          env-required:"true"`
	Region        string        `yaml:"region"          env:"STORAGE_REGION"          env-default:"us-east-1"`
	Endpoint      string        `yaml:"endpoint"        env:"STORAGE_ENDPOINT"`
	AccessKey     string        `yaml:"access_key"      env:"STORAGE_ACCESS_KEY"`
	SecretKey     string        `yaml:"secret_key"      env:"STORAGE_SECRET_KEY"`
	PublicBaseURL string        `yaml:"public_base_url" env:"STORAGE_PUBLIC_BASE_URL" env-required:"true"`
	UsePathStyle  bool          `yaml:"use_path_style"  env:"STORAGE_USE_PATH_STYLE"  env-default:"true"`
	UploadURLTTL  time.Duration `yaml:"upload_url_ttl"  env:"STORAGE_UPLOAD_URL_TTL"  env-default:"15m"`
}

// AuthConfig holds editor token settings. Tokens are issued by the identity
// provider and share the HS256 secret with this service.
type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"  env:"AUTH_JWT_SECRET"  env-required:"true"`
	JWTIssuer  string        `yaml:"jwt_issuer"  env:"AUTH_JWT_ISSUER"  env-default:"gradbook"`
	TokenTTL   time.Duration `yaml:"token_ttl"   env:"AUTH_TOKEN_TTL"   env-default:"12h"`
	BcryptCost int           `yaml:"bcrypt_cost" env:"AUTH_BCRYPT_COST" env-default:"10"`
}

// BookletConfig holds booklet assembly limits.
type BookletConfig struct {
	FetchTimeout     time.Duration `yaml:"fetch_timeout"     env:"BOOKLET_FETCH_TIMEOUT"     env-default:"30s"`
	MaxPDFBytes      int64         `yaml:"max_pdf_bytes"     env:"BOOKLET_MAX_PDF_BYTES"     env-default:"52428800"`
	MaxOutputBytes   int64         `yaml:"max_output_bytes"  env:"BOOKLET_MAX_OUTPUT_BYTES"  env-default:"104857600"`
	MaxPhotoBytes    int64         `yaml:"max_photo_bytes"   env:"BOOKLET_MAX_PHOTO_BYTES"   env-default:"5242880"`
	FetchConcurrency int           `yaml:"fetch_concurrency" env:"BOOKLET_FETCH_CONCURRENCY" env-default:"4"`
	PageOrderRaw     string        `yaml:"page_order"        env:"BOOKLET_PAGE_ORDER"        env-default:"students,messages,speeches"`
	CoverLabel       string        `yaml:"cover_label"       env:"BOOKLET_COVER_LABEL"       env-default:"Graduation Booklet"`
	CharsPerLine     int           `yaml:"chars_per_line"    env:"BOOKLET_CHARS_PER_LINE"    env-default:"85"`
	KeyPrefix        string        `yaml:"key_prefix"        env:"BOOKLET_KEY_PREFIX"        env-default:"booklets"`

	// PageOrder is parsed from PageOrderRaw during validation.
	PageOrder []string `yaml:"-" env:"-"`
}

// CollabConfig holds presence and field-lock timings.
type CollabConfig struct {
	HeartbeatInterval  time.Duration `yaml:"heartbeat_interval"   env:"COLLAB_HEARTBEAT_INTERVAL"   env-default:"60s"`
	StalenessWindow    time.Duration `yaml:"staleness_window"     env:"COLLAB_STALENESS_WINDOW"     env-default:"5m"`
	LockPruneSchedule  string        `yaml:"lock_prune_schedule"  env:"COLLAB_LOCK_PRUNE_SCHEDULE"  env-default:"@every 2m"`
	WebSocketReadLimit int64         `yaml:"websocket_read_limit" env:"COLLAB_WEBSOCKET_READ_LIMIT" env-default:"4096"`
}

// AssetsConfig holds the deferred-deletion reaper settings.
type AssetsConfig struct {
	ReaperSchedule  string `yaml:"reaper_schedule"   env:"ASSETS_REAPER_SCHEDULE"   env-default:"@every 10m"`
	ReaperBatchSize int    `yaml:"reaper_batch_size" env:"ASSETS_REAPER_BATCH_SIZE" env-default:"100"`
	MaxAttempts     int    `yaml:"max_attempts"      env:"ASSETS_MAX_ATTEMPTS"      env-default:"5"`
	DryRun          bool   `yaml:"dry_run"           env:"ASSETS_DRY_RUN"           env-default:"false"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"              env-default:"300"`
	BookletPerMinute  int           `yaml:"booklet_per_minute"  env:"RATE_LIMIT_BOOKLET_RPM"      env-default:"6"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// PublicURL joins the public base URL with an object key.
func (c StorageConfig) PublicURL(key string) string {
	return strings.TrimRight(c.PublicBaseURL, "/") + "/" + strings.TrimLeft(key, "/")
}
