package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config global configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Log          LogConfig          `mapstructure:"log"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
	Scheduler    SchedulerConfig    `mapstructure:"scheduler"`
	Notification NotificationConfig `mapstructure:"notification"`
}

// ServerConfig HTTP server
type ServerConfig struct {
	Name          string   `mapstructure:"name"`
	Host          string   `mapstructure:"host"`
	Port          int      `mapstructure:"port"`
	Mode          string   `mapstructure:"mode"` // debug, release
	AllowOrigins  []string `mapstructure:"allow_origins"`
	MaxUploadSize int64    `mapstructure:"max_upload_size"` // bytes
}

// DatabaseConfig database
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // mysql, postgres, sqlite
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Database        string `mapstructure:"database"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // seconds
	LogLevel        string `mapstructure:"log_level"`         // silent/error/warn/info
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
}

// AuthConfig authentication
type AuthConfig struct {
	JWT   JWTConfig   `mapstructure:"jwt"`
	LDAP  LDAPConfig  `mapstructure:"ldap"`
	Local LocalConfig `mapstructure:"local"`
}

// JWTConfig access and refresh tokens are signed with different secrets
type JWTConfig struct {
	AccessSecret       string `mapstructure:"access_secret"`
	RefreshSecret      string `mapstructure:"refresh_secret"`
	AccessTokenExpire  int    `mapstructure:"access_token_expire"`  // seconds
	RefreshTokenExpire int    `mapstructure:"refresh_token_expire"` // seconds
	Issuer             string `mapstructure:"issuer"`
}

// AccessTTL access token lifetime
func (c JWTConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenExpire) * time.Second
}

// RefreshTTL refresh token lifetime
func (c JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTokenExpire) * time.Second
}

// LDAPConfig LDAP
type LDAPConfig struct {
	Enabled      bool           `mapstructure:"enabled"`
	Host         string         `mapstructure:"host"`
	Port         int            `mapstructure:"port"`
	UseSSL       bool           `mapstructure:"use_ssl"`
	BindDN       string         `mapstructure:"bind_dn"`
	BindPassword string         `mapstructure:"bind_password"`
	BaseDN       string         `mapstructure:"base_dn"`
	UserFilter   string         `mapstructure:"user_filter"` // e.g. (mail=%s)
	Attributes   LDAPAttributes `mapstructure:"attributes"`
}

// LDAPAttributes LDAP attribute mapping
type LDAPAttributes struct {
	Email       string `mapstructure:"email"`
	DisplayName string `mapstructure:"display_name"`
}

// LocalConfig local users
type LocalConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig S3 compatible object storage (AWS or MinIO)
type StorageConfig struct {
	Region         string `mapstructure:"region"`
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	Bucket         string `mapstructure:"bucket"`
	ForcePathStyle bool   `mapstructure:"force_path_style"`
	PresignExpire  int    `mapstructure:"presign_expire"` // seconds
}

// PresignTTL lifetime of generated download links
func (c StorageConfig) PresignTTL() time.Duration {
	return time.Duration(c.PresignExpire) * time.Second
}

// LogConfig logging
type LogConfig struct {
	Level    string `mapstructure:"level"`  // debug, info, warn, error
	Format   string `mapstructure:"format"` // json, console
	Output   string `mapstructure:"output"` // stdout, file
	FilePath string `mapstructure:"file_path"`
}

// RateLimitConfig per client IP token bucket
type RateLimitConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Requests int  `mapstructure:"requests"`
	Window   int  `mapstructure:"window"` // seconds
}

// SchedulerConfig background jobs
type SchedulerConfig struct {
	OverdueSweep OverdueSweepConfig `mapstructure:"overdue_sweep"`
}

// OverdueSweepConfig marks pending invoices past due as overdue
type OverdueSweepConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"` // sec min hour dom month dow
}

// NotificationConfig notifications
type NotificationConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Provider   string `mapstructure:"provider"` // log, lark
	WebhookURL string `mapstructure:"webhook_url"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "agency-hub")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allow_origins", []string{"*"})
	v.SetDefault("server.max_upload_size", 50<<20)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 3600)
	v.SetDefault("database.log_level", "silent")

	v.SetDefault("auth.jwt.access_token_expire", 900)
	v.SetDefault("auth.jwt.refresh_token_expire", 30*24*3600)
	v.SetDefault("auth.jwt.issuer", "agency-hub")
	v.SetDefault("auth.local.enabled", true)
	v.SetDefault("auth.ldap.user_filter", "(mail=%s)")
	v.SetDefault("auth.ldap.attributes.email", "mail")
	v.SetDefault("auth.ldap.attributes.display_name", "cn")

	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "agency-hub")
	v.SetDefault("storage.force_path_style", true)
	v.SetDefault("storage.presign_expire", 3600)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", 60)

	v.SetDefault("scheduler.overdue_sweep.enabled", false)
	v.SetDefault("scheduler.overdue_sweep.cron", "0 0 1 * * *")

	v.SetDefault("notification.provider", "log")
}

// Load reads the config file; environment variables override it (server.port -> SERVER_PORT).
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Auth.JWT.AccessSecret == "" || c.Auth.JWT.RefreshSecret == "" {
		return fmt.Errorf("auth.jwt.access_secret and auth.jwt.refresh_secret are required")
	}
	if c.Auth.JWT.AccessSecret == c.Auth.JWT.RefreshSecret {
		return fmt.Errorf("auth.jwt.refresh_secret must differ from auth.jwt.access_secret")
	}
	if c.Auth.JWT.AccessTokenExpire <= 0 || c.Auth.JWT.RefreshTokenExpire <= 0 {
		return fmt.Errorf("auth.jwt token expiry must be positive")
	}
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	return nil
}

// GetDSN builds the driver specific DSN
func (c *DatabaseConfig) GetDSN() string {
	switch c.Driver {
	case "postgres":
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			c.Host, c.Port, c.Username, c.Password, c.Database, sslMode)
	case "sqlite":
		return c.Database
	default:
		// clientFoundRows: RowsAffected counts matched rows, so a no-op update is not read as a missing row
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true",
			c.Username,
			c.Password,
			c.Host,
			c.Port,
			c.Database,
		)
	}
}
