package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8080},
		Catalog: CatalogConfig{Path: "data/anime.parquet"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_Drivers(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "parquet without path",
			mutate:  func(c *Config) { c.Catalog.Path = "" },
			wantErr: "catalog.path is required",
		},
		{
			name:    "redis without addrs",
			mutate:  func(c *Config) { c.Catalog.Driver = DriverRedis },
			wantErr: "database.addrs is required for the redis driver",
		},
		{
			name: "valkey with addrs",
			mutate: func(c *Config) {
				c.Catalog.Driver = DriverValkey
				c.Database.Addrs = []string{"localhost:6379"}
			},
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Catalog.Driver = "csv" },
			wantErr: `got "csv"`,
		},
		{
			name:    "default k above max",
			mutate:  func(c *Config) { c.Recommend.DefaultK = 600 },
			wantErr: "recommend.default_k",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Catalog.Driver != DriverParquet {
		t.Errorf("expected Driver=parquet, got %q", cfg.Catalog.Driver)
	}
	if cfg.Catalog.Columns.ID != "anime_id" || cfg.Catalog.Columns.Name != "name" || cfg.Catalog.Columns.Tags != "genre" {
		t.Errorf("unexpected default columns: %+v", cfg.Catalog.Columns)
	}
	if cfg.Database.KeyPrefix != "tagsim:" {
		t.Errorf("expected KeyPrefix='tagsim:', got %q", cfg.Database.KeyPrefix)
	}
	if cfg.Recommend.DefaultK != 5 {
		t.Errorf("expected DefaultK=5, got %d", cfg.Recommend.DefaultK)
	}
	if cfg.Recommend.MaxK != 500 {
		t.Errorf("expected MaxK=500, got %d", cfg.Recommend.MaxK)
	}
	if cfg.Recommend.DefaultPageSize != 20 || cfg.Recommend.MaxPageSize != 100 {
		t.Errorf("unexpected page sizes: %+v", cfg.Recommend)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Catalog:   CatalogConfig{Driver: DriverRedis, Columns: ColumnsConfig{ID: "item_id"}},
		Database:  DatabaseConfig{KeyPrefix: "custom:"},
		Recommend: RecommendConfig{DefaultK: 10, MaxK: 50},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Catalog.Driver != DriverRedis {
		t.Errorf("expected Driver=redis, got %q", cfg.Catalog.Driver)
	}
	if cfg.Catalog.Columns.ID != "item_id" {
		t.Errorf("expected ID column item_id, got %q", cfg.Catalog.Columns.ID)
	}
	if cfg.Database.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Database.KeyPrefix)
	}
	if cfg.Recommend.DefaultK != 10 || cfg.Recommend.MaxK != 50 {
		t.Errorf("unexpected recommend config: %+v", cfg.Recommend)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("TAGSIM_PORT", "9090")

	cfg, err := Parse([]byte(`
http:
  port: ${TAGSIM_PORT}
catalog:
  path: ${TAGSIM_CATALOG:-data/anime.parquet}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Catalog.Path != "data/anime.parquet" {
		t.Errorf("expected default path, got %q", cfg.Catalog.Path)
	}
	if cfg.UsesDatabase() {
		t.Error("parquet driver must not use the database")
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected YAML error")
	}
	if _, err := Parse([]byte("http:\n  port: 8080\n")); err == nil {
		t.Fatal("expected validation error for missing catalog.path")
	}
}
