package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "mongo")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown STORAGE_DRIVER")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("expected memory storage by default, got %q", cfg.StorageDriver)
	}
	if cfg.OverrideWorkerCount != 4 {
		t.Fatalf("unexpected OverrideWorkerCount: %d", cfg.OverrideWorkerCount)
	}
	if cfg.ImportMatchThreshold != 0.7 {
		t.Fatalf("unexpected ImportMatchThreshold: %v", cfg.ImportMatchThreshold)
	}
	if cfg.AuditEnabled {
		t.Fatalf("expected audit disabled by default")
	}
	if cfg.AuditInterval != time.Hour {
		t.Fatalf("unexpected AuditInterval: %s", cfg.AuditInterval)
	}
	if !cfg.DBCircuitEnabled || cfg.DBCircuitThreshold != 5 || cfg.DBCircuitOpenTimeout != 15*time.Second {
		t.Fatalf("unexpected db circuit config: enabled=%v threshold=%d timeout=%s", cfg.DBCircuitEnabled, cfg.DBCircuitThreshold, cfg.DBCircuitOpenTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PyroscopeRequiresServerWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_RejectsInvalidNumbers(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "worker count zero", key: "OVERRIDE_WORKER_COUNT", value: "0"},
		{name: "worker count text", key: "OVERRIDE_WORKER_COUNT", value: "many"},
		{name: "threshold above one", key: "IMPORT_NAME_MATCH_THRESHOLD", value: "1.5"},
		{name: "negative audit interval", key: "AUDIT_INTERVAL", value: "-1m"},
		{name: "bad read timeout", key: "APP_READ_TIMEOUT", value: "soon"},
		{name: "circuit threshold zero", key: "DB_CIRCUIT_FAILURE_THRESHOLD", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_ParsesOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("STORAGE_DRIVER", "POSTGRES")
	t.Setenv("AUDIT_ENABLED", "true")
	t.Setenv("AUDIT_INTERVAL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://club.example, https://admin.club.example ,")
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StoragePostgres {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if !cfg.AuditEnabled || cfg.AuditInterval != 30*time.Minute {
		t.Fatalf("unexpected audit config: enabled=%v interval=%s", cfg.AuditEnabled, cfg.AuditInterval)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.LogLevel.String() != "warn" {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel.String())
	}
}
