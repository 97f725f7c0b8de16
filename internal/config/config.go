package config

import (
	"encoding/json"
	"flag"
	"os"
	"strings"
)

type Config struct {
	Port      string `json:"port"`
	DefsDir   string `json:"defsDir"`
	StoresDir string `json:"storesDir"`
	DBURL     string `json:"dbUrl"`

	// AutoMigrate applies generated DDL to the database on startup.
	AutoMigrate bool `json:"autoMigrate"`

	// Lang is the default declaration dialect when a request names none.
	Lang string `json:"lang"`
}

func def() Config {
	return Config{
		Port:        "8080",
		DefsDir:     "defs",
		StoresDir:   "stores",
		DBURL:       "",
		AutoMigrate: false,
		Lang:        "python",
	}
}

func loadJSON(path string) (Config, error) {
	c := def()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getenvBool(k string, fallback bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		v = strings.TrimSpace(strings.ToLower(v))
		if v == "1" || v == "true" || v == "yes" {
			return true
		}
		if v == "0" || v == "false" || v == "no" {
			return false
		}
	}
	return fallback
}

// Load reads the JSON config at jsonPath when it exists, then applies ENV
// overrides, then flag overrides from args.
func Load(jsonPath string, args []string) Config {
	cfg := def()

	if st, err := os.Stat(jsonPath); err == nil && !st.IsDir() {
		if c2, err := loadJSON(jsonPath); err == nil {
			cfg = c2
		}
	}

	cfg.Port = getenv("BABEL_PORT", cfg.Port)
	cfg.DefsDir = getenv("BABEL_DEFS_DIR", cfg.DefsDir)
	cfg.StoresDir = getenv("BABEL_STORES_DIR", cfg.StoresDir)
	cfg.DBURL = getenv("BABEL_DB_URL", cfg.DBURL)
	cfg.AutoMigrate = getenvBool("BABEL_AUTO_MIGRATE", cfg.AutoMigrate)
	cfg.Lang = getenv("BABEL_LANG", cfg.Lang)

	fs := flag.NewFlagSet("babel", flag.ExitOnError)
	configPath := fs.String("config", jsonPath, "Path to config JSON")
	port := fs.String("port", cfg.Port, "HTTP port")
	defs := fs.String("defs", cfg.DefsDir, "Path to definition (.dsl) directory")
	storesDir := fs.String("stores", cfg.StoresDir, "Path to store catalog directory")
	db := fs.String("db", cfg.DBURL, "Postgres URL (empty = no database)")
	auto := fs.Bool("auto-migrate", cfg.AutoMigrate, "Apply generated DDL on startup")
	lang := fs.String("lang", cfg.Lang, "Default declaration dialect (python/matlab)")
	_ = fs.Parse(args)

	// A -config flag pointing elsewhere restarts the whole layering.
	if *configPath != jsonPath {
		return Load(*configPath, args)
	}

	cfg.Port = strings.TrimSpace(*port)
	cfg.DefsDir = strings.TrimSpace(*defs)
	cfg.StoresDir = strings.TrimSpace(*storesDir)
	cfg.DBURL = strings.TrimSpace(*db)
	cfg.AutoMigrate = *auto
	cfg.Lang = strings.TrimSpace(*lang)

	return cfg
}
