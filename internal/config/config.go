package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultDBPath         = "./costsheet.db"
	defaultPort           = "8080"
	defaultEnv            = "development"
	defaultEngine         = EngineNetHTTP
	defaultConfigFile     = "costsheet.toml"
	defaultRegime         = "Lucro Real"
	defaultContractMonths = 12
)

// Transport engines accepted by SERVER_ENGINE.
const (
	EngineNetHTTP  = "nethttp"
	EngineFastHTTP = "fasthttp"
)

// Config holds application configuration. Environment variables win over the TOML file,
// which wins over defaults.
type Config struct {
	Env            string
	Port           string
	Engine         string
	AdminToken     string
	DBPath         string
	DefaultRegime  string
	ContractMonths int
}

// IsDev reports whether the app runs in development mode.
func (c Config) IsDev() bool {
	return c.Env == "" || c.Env == defaultEnv || c.Env == "dev"
}

type fileConfig struct {
	Server struct {
		Env        string `toml:"env"`
		Port       int    `toml:"port"`
		Engine     string `toml:"engine"`
		AdminToken string `toml:"admin_token"`
	} `toml:"server"`
	Database struct {
		Path string `toml:"path"`
	} `toml:"database"`
	Defaults struct {
		Regime         string `toml:"regime"`
		ContractMonths int    `toml:"contract_months"`
	} `toml:"defaults"`
}

// Load reads .env, the optional TOML file named by COSTSHEET_CONFIG and the environment.
func Load() Config {
	// Local development convenience; production injects real env vars.
	if _, err := loadDotEnv(".env"); err != nil {
		log.Printf("warning: reading .env: %v", err)
	}

	path := os.Getenv("COSTSHEET_CONFIG")
	if path == "" {
		path = defaultConfigFile
	}
	cfg, err := loadFile(path)
	if err != nil {
		log.Printf("warning: %v; using defaults", err)
		cfg = defaults()
	}

	applyEnv(&cfg)

	if cfg.Engine != EngineNetHTTP && cfg.Engine != EngineFastHTTP {
		log.Printf("warning: unknown SERVER_ENGINE %q, using %s", cfg.Engine, defaultEngine)
		cfg.Engine = defaultEngine
	}
	if cfg.ContractMonths < 1 {
		log.Printf("warning: DEFAULT_CONTRACT_MONTHS must be at least 1, using %d", defaultContractMonths)
		cfg.ContractMonths = defaultContractMonths
	}
	if cfg.AdminToken == "" {
		log.Print("warning: ADMIN_TOKEN is not set; write endpoints are unauthenticated")
	}

	return cfg
}

func defaults() Config {
	return Config{
		Env:            defaultEnv,
		Port:           defaultPort,
		Engine:         defaultEngine,
		DBPath:         defaultDBPath,
		DefaultRegime:  defaultRegime,
		ContractMonths: defaultContractMonths,
	}
}

// loadFile merges the TOML file at path over the defaults. A missing file is not an error.
func loadFile(path string) (Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Server.Env != "" {
		cfg.Env = fc.Server.Env
	}
	if fc.Server.Port > 0 {
		cfg.Port = strconv.Itoa(fc.Server.Port)
	}
	if fc.Server.Engine != "" {
		cfg.Engine = fc.Server.Engine
	}
	if fc.Server.AdminToken != "" {
		cfg.AdminToken = fc.Server.AdminToken
	}
	if fc.Database.Path != "" {
		cfg.DBPath = fc.Database.Path
	}
	if fc.Defaults.Regime != "" {
		cfg.DefaultRegime = fc.Defaults.Regime
	}
	if fc.Defaults.ContractMonths != 0 {
		cfg.ContractMonths = fc.Defaults.ContractMonths
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	for env, dst := range map[string]*string{
		"APP_ENV":        &cfg.Env,
		"PORT":           &cfg.Port,
		"SERVER_ENGINE":  &cfg.Engine,
		"ADMIN_TOKEN":    &cfg.AdminToken,
		"DB_PATH":        &cfg.DBPath,
		"DEFAULT_REGIME": &cfg.DefaultRegime,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("DEFAULT_CONTRACT_MONTHS"); v != "" {
		months, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("warning: DEFAULT_CONTRACT_MONTHS=%q is not an integer", v)
			return
		}
		cfg.ContractMonths = months
	}
}
