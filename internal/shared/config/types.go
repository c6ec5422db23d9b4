package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Database drivers accepted by DatabaseConfig.Driver.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN returns the connection string for the configured driver.
// For sqlite the DSN is the database file path.
func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database)
	case DriverSQLite:
		if d.Path == "" {
			return "docforge.db"
		}
		return d.Path
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=Local&multiStatements=true",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Rasterizer backends accepted by ExportConfig.Rasterizer.
const (
	RasterizerWkhtmltopdf = "wkhtmltopdf"
	RasterizerGotenberg   = "gotenberg"
	RasterizerNative      = "fpdf"
)

// Session stores accepted by ExportConfig.SessionStore.
const (
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

type ExportConfig struct {
	Rasterizer       string        `mapstructure:"rasterizer"`
	WkhtmltopdfPath  string        `mapstructure:"wkhtmltopdf_path"`
	GotenbergURL     string        `mapstructure:"gotenberg_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	Landscape        bool          `mapstructure:"landscape"`
	HeaderSpacing    int           `mapstructure:"header_spacing"`
	FooterSpacing    int           `mapstructure:"footer_spacing"`
	LayoutDir        string        `mapstructure:"layout_dir"`
	FontPath         string        `mapstructure:"font_path"`
	SessionStore     string        `mapstructure:"session_store"`
	SessionTTL       time.Duration `mapstructure:"session_ttl"`
	DownloadBasePath string        `mapstructure:"download_base_path"`

	// ArtifactRetention is the age after which artifacts are purged; zero
	// keeps them forever.
	ArtifactRetention   time.Duration `mapstructure:"artifact_retention"`
	MaintenanceInterval time.Duration `mapstructure:"maintenance_interval"`
}

type BrandingConfig struct {
	CompanyName string `mapstructure:"company_name"`
	Address     string `mapstructure:"address"`
	Phone       string `mapstructure:"phone"`
	LogoPath    string `mapstructure:"logo_path"`
}

type APIConfig struct {
	// KeyHashes are bcrypt hashes of the accepted X-API-Key values.
	KeyHashes  []string      `mapstructure:"key_hashes"`
	RateLimit  int           `mapstructure:"rate_limit"`
	RateWindow time.Duration `mapstructure:"rate_window"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}
