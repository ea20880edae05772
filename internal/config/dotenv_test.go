package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	return path
}

func TestLoadDotEnv_LoadsValuesAndIgnoresNoise(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("DEFAULT_REGIME", "")

	path := writeDotEnv(t, `
# local overrides

DB_PATH=/tmp/costsheet.db
export PORT=9090
DEFAULT_REGIME="Simples Nacional"
not a pair
`)

	n, err := loadDotEnv(path)
	if err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}
	if n != 3 {
		t.Fatalf("set %d keys, want 3", n)
	}

	for key, want := range map[string]string{
		"DB_PATH":        "/tmp/costsheet.db",
		"PORT":           "9090",
		"DEFAULT_REGIME": "Simples Nacional",
	} {
		if got := os.Getenv(key); got != want {
			t.Fatalf("%s=%q, want %q", key, got, want)
		}
	}
}

func TestLoadDotEnv_DoesNotOverwriteExistingEnv(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "from-env")

	path := writeDotEnv(t, "ADMIN_TOKEN=from-file\n")
	n, err := loadDotEnv(path)
	if err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if n != 0 {
		t.Fatalf("set %d keys, want 0", n)
	}
	if got := os.Getenv("ADMIN_TOKEN"); got != "from-env" {
		t.Fatalf("ADMIN_TOKEN=%q, want %q", got, "from-env")
	}
}

func TestLoadDotEnv_QuotesAndInlineComments(t *testing.T) {
	t.Setenv("Q", "")
	t.Setenv("H", "")
	t.Setenv("C", "")

	path := writeDotEnv(t, "Q='hello # world' # trailing\nH=\"a#b\"\nC=plain # comment\n")
	if _, err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("Q"); got != "hello # world" {
		t.Fatalf("Q=%q, want %q", got, "hello # world")
	}
	if got := os.Getenv("H"); got != "a#b" {
		t.Fatalf("H=%q, want %q", got, "a#b")
	}
	if got := os.Getenv("C"); got != "plain" {
		t.Fatalf("C=%q, want %q", got, "plain")
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	n, err := loadDotEnv(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil || n != 0 {
		t.Fatalf("loadDotEnv missing file = (%d, %v), want (0, nil)", n, err)
	}
}
