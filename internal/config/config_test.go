package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "STORE_DRIVER", "STORE_KEY", "TIMEZONE", "CURRENCY", "GOOGLE_SHEET_DATABASE_ID"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Store.Driver != DriverFile || cfg.Store.Key != "sales_tracker_articles" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Reporting.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", cfg.Reporting.Currency)
	}
	if cfg.Sheets.Enabled() {
		t.Error("sheets export should be disabled by default")
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("MYSQL_DSN", "")
	t.Setenv("TIMEZONE", "")

	path := filepath.Join(t.TempDir(), "test.env")
	content := "STORE_DRIVER=MySQL\nMYSQL_DSN=user:pw@tcp(localhost:3306)/resale\nTIMEZONE=UTC\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables already present, so clear them.
	for _, key := range []string{"STORE_DRIVER", "MYSQL_DSN", "TIMEZONE"} {
		os.Unsetenv(key)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != DriverMySQL {
		t.Errorf("Driver = %q, want mysql", cfg.Store.Driver)
	}
	loc, err := cfg.Reporting.Location()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("Location = %v, %v", loc, err)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Store:     StoreConfig{Driver: DriverMemory, Key: "k"},
			Reporting: ReportingConfig{CronSchedule: "0 20 * * 0", Timezone: "UTC"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Store.Driver = "redis" }, "unsupported STORE_DRIVER"},
		{"mongodb without uri", func(c *Config) { c.Store.Driver = DriverMongoDB; c.Store.MongoDBName = "x" }, "MONGODB_URI"},
		{"postgres without dsn", func(c *Config) { c.Store.Driver = DriverPostgres }, "POSTGRES_DSN"},
		{"bad timezone", func(c *Config) { c.Reporting.Timezone = "Mars/Olympus" }, "invalid TIMEZONE"},
		{"sheets without credentials", func(c *Config) { c.Sheets.SpreadsheetID = "sheet" }, "GOOGLE_SHEETS_CREDENTIALS_PATH"},
		{"empty key", func(c *Config) { c.Store.Key = "" }, "STORE_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLocationLocal(t *testing.T) {
	loc, err := ReportingConfig{Timezone: "Local"}.Location()
	if err != nil || loc != time.Local {
		t.Errorf("Location(Local) = %v, %v", loc, err)
	}
}
