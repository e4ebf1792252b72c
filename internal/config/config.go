package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Upstream struct {
		GasURL        string `mapstructure:"gas_url"`
		SpreadsheetID string `mapstructure:"spreadsheet_id"`
		SheetList     string `mapstructure:"sheet_list"`
		SheetAction   string `mapstructure:"sheet_action"`
		MasterCSVURL  string `mapstructure:"master_csv_url"` // optional CSV source for master data
		DriveFolderID string `mapstructure:"drive_folder_id"`
	} `mapstructure:"upstream"`

	Queue struct {
		SyncSchedule string `mapstructure:"sync_schedule"` // cron spec; empty disables the scheduler
	} `mapstructure:"queue"`

	Archive struct {
		Enabled   bool   `mapstructure:"enabled"`
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		Bucket    string `mapstructure:"bucket"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"archive"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "fishplant-backend")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "fishplant_db")
	v.SetDefault("upstream.sheet_list", "master")
	v.SetDefault("upstream.sheet_action", "records")
	v.SetDefault("queue.sync_schedule", "*/5 * * * *")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Unexpanded ${VAR} placeholders from the yaml count as unset.
	for _, p := range []*string{
		&cfg.Database.Password, &cfg.JWT.Secret,
		&cfg.Upstream.GasURL, &cfg.Upstream.SpreadsheetID,
		&cfg.Upstream.MasterCSVURL, &cfg.Upstream.DriveFolderID,
	} {
		if strings.HasPrefix(*p, "${") {
			*p = ""
		}
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// Override JWT secret from environment if not set
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		if cfg.JWT.Secret == "" {
			log.Fatal("JWT_SECRET not set in config or environment")
		}
	}

	// Upstream overrides from environment
	if u := os.Getenv("GAS_URL"); u != "" {
		cfg.Upstream.GasURL = u
	}
	if id := os.Getenv("SPREADSHEET_ID"); id != "" {
		cfg.Upstream.SpreadsheetID = id
	}
	if u := os.Getenv("MASTER_CSV_URL"); u != "" {
		cfg.Upstream.MasterCSVURL = u
	}
	if id := os.Getenv("DRIVE_FOLDER_ID_PHOTOS"); id != "" {
		cfg.Upstream.DriveFolderID = id
	}

	// The spreadsheet web app is the system of record; without it nothing
	// works, so fail fast with a descriptive error instead of degrading.
	if cfg.Upstream.GasURL == "" {
		log.Fatal("missing required configuration: upstream.gas_url (env GAS_URL)")
	}
	if cfg.Upstream.SpreadsheetID == "" {
		log.Fatal("missing required configuration: upstream.spreadsheet_id (env SPREADSHEET_ID)")
	}

	// Archive credentials from environment
	if key := os.Getenv("ARCHIVE_ACCESS_KEY"); key != "" {
		cfg.Archive.AccessKey = key
	}
	if key := os.Getenv("ARCHIVE_SECRET_KEY"); key != "" {
		cfg.Archive.SecretKey = key
	}

	return &cfg
}
