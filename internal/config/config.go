package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// Config holds the configuration for the snapvote server and its dependencies.
type Config struct {
	// Listen is the address the snapvote server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// ServerURL is the base URL of the snapvote server, used in notification links.
	ServerURL string `yaml:"server_url" mapstructure:"server_url"`
	// SessionKey is the key used to encrypt session data.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionMaxAge is the maximum age of a session in seconds.
	SessionMaxAge int `yaml:"session_max_age" mapstructure:"session_max_age"`
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	// AdminEmployeeID is the employee id that is granted admin capability on login.
	// The comparison is case-insensitive and the account is auto-provisioned.
	AdminEmployeeID string `yaml:"admin_employee_id" mapstructure:"admin_employee_id"`
	// Themes is the fixed set of contest themes a submission must pick from.
	Themes []string `yaml:"themes" mapstructure:"themes"`
	// MaxPhotosPerUser is the maximum number of non-rejected photos a user may hold.
	MaxPhotosPerUser int `yaml:"max_photos_per_user" mapstructure:"max_photos_per_user"`

	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Images holds the image storage configuration.
	Images *ImagesConfig `yaml:"images" mapstructure:"images"`
	// Cache holds the cache engine configuration.
	Cache *CacheConfig `yaml:"cache" mapstructure:"cache"`
	// Email holds the email notification configuration.
	Email *EmailConfig `yaml:"email" mapstructure:"email"`
	// DiskPolicy holds the disk usage guard configuration for uploads.
	DiskPolicy *DiskPolicyConfig `yaml:"disk_policy" mapstructure:"disk_policy"`

	// OrphanSweepSchedule is the cron schedule for the orphaned asset sweep.
	OrphanSweepSchedule string `yaml:"orphan_sweep_schedule" mapstructure:"orphan_sweep_schedule"`
	// CacheFlushSchedule is the cron schedule for the periodic cache flush.
	CacheFlushSchedule string `yaml:"cache_flush_schedule" mapstructure:"cache_flush_schedule"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the path to the sqlite database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// ImagesConfig holds the image storage configuration.
type ImagesConfig struct {
	// Dir is the directory where uploaded photos are stored.
	Dir string `yaml:"dir" mapstructure:"dir"`
	// MaxWidth is the maximum width images are scaled down to.
	MaxWidth int `yaml:"max_width" mapstructure:"max_width"`
	// MaxHeight is the maximum height images are scaled down to.
	MaxHeight int `yaml:"max_height" mapstructure:"max_height"`
	// Quality is the JPEG quality (1-100) used when re-encoding uploads.
	Quality int `yaml:"quality" mapstructure:"quality"`
	// Remote holds the optional remote image store configuration.
	Remote *RemoteImagesConfig `yaml:"remote" mapstructure:"remote"`
	// InlineFallback stores a base64 copy of the image in the photo row
	// when no remote store is configured, so photos survive losing the
	// local photo directory.
	InlineFallback bool `yaml:"inline_fallback" mapstructure:"inline_fallback"`
}

// RemoteImagesConfig holds the configuration for an optional remote image store.
type RemoteImagesConfig struct {
	// Enabled indicates whether the remote image store is used.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// URL is the base URL of the remote store.
	URL string `yaml:"url" mapstructure:"url"`
	// APIKey is sent as a bearer token on store requests.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
}

// CacheConfig holds the cache engine configuration.
type CacheConfig struct {
	// Type is the cache backend type ("memory" or "redis").
	Type CacheType `yaml:"type" mapstructure:"type"`
	// RedisURL is the address of the redis server, required for the redis backend.
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
	// TTL is the cache entry lifetime in seconds.
	TTL int `yaml:"ttl" mapstructure:"ttl"`
}

// EmailConfig holds the email notification configuration.
type EmailConfig struct {
	// Enabled indicates whether email notifications are enabled.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// SMTPHost is the SMTP server host.
	SMTPHost string `yaml:"smtp_host" mapstructure:"smtp_host"`
	// SMTPPort is the SMTP server port.
	SMTPPort int `yaml:"smtp_port" mapstructure:"smtp_port"`
	// Username is the SMTP username.
	Username string `yaml:"username" mapstructure:"username"`
	// Password is the SMTP password.
	Password string `yaml:"password" mapstructure:"password"`
	// FromEmail is the email address from which notifications are sent.
	FromEmail string `yaml:"from_email" mapstructure:"from_email"`
	// FromName is the name from which notifications are sent.
	FromName string `yaml:"from_name" mapstructure:"from_name"`
	// AdminEmail is the address new-submission notifications are sent to.
	AdminEmail string `yaml:"admin_email" mapstructure:"admin_email"`
	// UseTLS indicates whether to use TLS for the SMTP connection.
	UseTLS bool `yaml:"use_tls" mapstructure:"use_tls"`
	// InsecureSkipVerify indicates whether to skip TLS certificate verification.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`
}

// DiskPolicyConfig holds the disk usage guard configuration.
type DiskPolicyConfig struct {
	// Enabled indicates whether the disk usage guard is active.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// MaxUsagePercent is the disk usage percentage above which uploads are declined.
	MaxUsagePercent float64 `yaml:"max_usage_percent" mapstructure:"max_usage_percent"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:8080")
	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("session_max_age", 3600)
	v.SetDefault("log_level", "info")

	v.SetDefault("admin_employee_id", "ALPHABETAGAMMA")
	v.SetDefault("themes", []string{
		"Happy Department is an Efficient Department",
		"New Income Tax Act",
	})
	v.SetDefault("max_photos_per_user", 2)

	v.SetDefault("database.path", "./data/snapvote.db")

	v.SetDefault("images.dir", "./data/photos")
	v.SetDefault("images.max_width", 1600)
	v.SetDefault("images.max_height", 1600)
	v.SetDefault("images.quality", 85)
	v.SetDefault("images.inline_fallback", true)
	v.SetDefault("images.remote.enabled", false)

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", 300)

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.use_tls", true)

	v.SetDefault("disk_policy.enabled", false)
	v.SetDefault("disk_policy.max_usage_percent", 95)

	v.SetDefault("orphan_sweep_schedule", "0 * * * *")
	v.SetDefault("cache_flush_schedule", "0 0 * * 0")
}

// Load reads the configuration from the given path, or from the default
// search locations if path is empty. Environment variables with the
// SNAPVOTE_ prefix override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("SNAPVOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.snapvote")
		v.AddConfigPath("/etc/snapvote")
	}

	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

func sanitizeConfig(c *Config) {
	c.AdminEmployeeID = strings.ToUpper(strings.TrimSpace(c.AdminEmployeeID))
	for i, t := range c.Themes {
		c.Themes[i] = strings.TrimSpace(t)
	}
	if c.Images != nil && c.Images.Remote != nil {
		c.Images.Remote.URL = strings.TrimSuffix(strings.TrimSpace(c.Images.Remote.URL), "/")
	}
}

func validateConfig(c *Config) error {
	if c.AdminEmployeeID == "" {
		return fmt.Errorf("admin_employee_id is required")
	}
	if len(c.Themes) == 0 {
		return fmt.Errorf("at least one theme is required")
	}
	if c.MaxPhotosPerUser <= 0 {
		return fmt.Errorf("max_photos_per_user must be positive")
	}
	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Images == nil || c.Images.Dir == "" {
		return fmt.Errorf("images.dir is required")
	}
	if c.Images.Quality < 1 || c.Images.Quality > 100 {
		return fmt.Errorf("images.quality must be between 1 and 100")
	}
	if c.Images.Remote != nil && c.Images.Remote.Enabled && c.Images.Remote.URL == "" {
		return fmt.Errorf("images.remote.url is required when the remote store is enabled")
	}
	if c.Cache != nil && c.Cache.Type == CacheTypeRedis && c.Cache.RedisURL == "" {
		return fmt.Errorf("cache.redis_url is required for the redis cache")
	}
	if c.Email != nil && c.Email.Enabled {
		if c.Email.SMTPHost == "" {
			return fmt.Errorf("email.smtp_host is required when email is enabled")
		}
		if c.Email.AdminEmail == "" {
			return fmt.Errorf("email.admin_email is required when email is enabled")
		}
	}
	return nil
}

// HasTheme reports whether theme is one of the configured contest themes.
func (c *Config) HasTheme(theme string) bool {
	for _, t := range c.Themes {
		if t == theme {
			return true
		}
	}
	return false
}
