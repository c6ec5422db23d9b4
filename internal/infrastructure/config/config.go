package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/orris-inc/docforge/internal/shared/config"
)

type Config struct {
	Server   sharedConfig.ServerConfig   `mapstructure:"server"`
	Database sharedConfig.DatabaseConfig `mapstructure:"database"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Redis    sharedConfig.RedisConfig    `mapstructure:"redis"`
	Export   sharedConfig.ExportConfig   `mapstructure:"export"`
	Branding sharedConfig.BrandingConfig `mapstructure:"branding"`
	API      sharedConfig.APIConfig      `mapstructure:"api"`
	Email    sharedConfig.EmailConfig    `mapstructure:"email"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables. When path is
// empty the "config.yaml" file is searched in the usual configs directories.
func Load(env, path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("DOCFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")

	// Database defaults
	v.SetDefault("database.driver", sharedConfig.DriverMySQL)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "docforge_dev")
	v.SetDefault("database.path", "docforge.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Export defaults
	v.SetDefault("export.rasterizer", sharedConfig.RasterizerWkhtmltopdf)
	v.SetDefault("export.wkhtmltopdf_path", "wkhtmltopdf")
	v.SetDefault("export.gotenberg_url", "http://localhost:3000")
	v.SetDefault("export.timeout", "60s")
	v.SetDefault("export.landscape", false)
	v.SetDefault("export.header_spacing", 5)
	v.SetDefault("export.footer_spacing", 5)
	v.SetDefault("export.layout_dir", "")
	v.SetDefault("export.font_path", "")
	v.SetDefault("export.session_store", sharedConfig.SessionStoreRedis)
	v.SetDefault("export.session_ttl", "2h")
	v.SetDefault("export.download_base_path", "/api/v1/artifacts")
	v.SetDefault("export.artifact_retention", "0s")
	v.SetDefault("export.maintenance_interval", "10m")

	// Branding defaults
	v.SetDefault("branding.company_name", "")

	// API defaults
	v.SetDefault("api.rate_limit", 30)
	v.SetDefault("api.rate_window", "1m")

	// Email defaults
	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 1025)
	v.SetDefault("email.smtp_user", "")
	v.SetDefault("email.smtp_password", "")
	v.SetDefault("email.from_address", "noreply@docforge.local")
	v.SetDefault("email.from_name", "Docforge")
}
