package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "PORT", "SERVER_ENGINE", "ADMIN_TOKEN", "DB_PATH",
		"DEFAULT_REGIME", "DEFAULT_CONTRACT_MONTHS", "COSTSHEET_CONFIG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFile_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := loadFile(filepath.Join(t.TempDir(), "costsheet.toml"))
	if err != nil {
		t.Fatalf("loadFile: %v", err)
	}
	if cfg != defaults() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadFile_MergesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "costsheet.toml")
	content := `
[server]
port = 9191
engine = "fasthttp"
env = "production"

[database]
path = "/var/lib/costsheet/data.db"

[defaults]
regime = "Lucro Presumido"
contract_months = 30
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadFile(path)
	if err != nil {
		t.Fatalf("loadFile: %v", err)
	}

	if cfg.Port != "9191" || cfg.Engine != EngineFastHTTP || cfg.IsDev() {
		t.Fatalf("unexpected server section: %+v", cfg)
	}
	if cfg.DBPath != "/var/lib/costsheet/data.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.DefaultRegime != "Lucro Presumido" || cfg.ContractMonths != 30 {
		t.Fatalf("unexpected defaults section: %+v", cfg)
	}
}

func TestLoadFile_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "costsheet.toml")
	if err := os.WriteFile(path, []byte("[server\nport = "), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "costsheet.toml")
	if err := os.WriteFile(path, []byte("[server]\nport = 7000\n[defaults]\ncontract_months = 6\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("COSTSHEET_CONFIG", path)
	t.Setenv("PORT", "7001")
	t.Setenv("SERVER_ENGINE", "carrier-pigeon")

	cfg := Load()

	if cfg.Port != "7001" {
		t.Fatalf("Port = %q, want 7001", cfg.Port)
	}
	if cfg.ContractMonths != 6 {
		t.Fatalf("ContractMonths = %d, want 6", cfg.ContractMonths)
	}
	if cfg.Engine != EngineNetHTTP {
		t.Fatalf("Engine = %q, want fallback %q", cfg.Engine, EngineNetHTTP)
	}
}
