package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type DB struct {
	Driver string
	Path   string
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
}

type AppConfig struct {
	DB          DB
	LogPath     string
	DefaultUser string
}

var cfg AppConfig

// Init loads the YAML config at path. A missing file is not an error; the
// defaults below describe a self-contained local setup.
func Init(path string) AppConfig {
	dir := dataDir()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// defaults
	v.SetDefault("app.db.driver", "sqlite")
	v.SetDefault("app.db.path", filepath.Join(dir, "bmi_database.db"))
	v.SetDefault("app.db.host", "127.0.0.1")
	v.SetDefault("app.db.port", 3306)
	v.SetDefault("app.db.user", "root")
	v.SetDefault("app.db.pass", "")
	v.SetDefault("app.db.name", "bmitrack")
	v.SetDefault("app.log_path", filepath.Join(dir, "bmitrack.log"))
	v.SetDefault("app.default_user", "")
	_ = v.ReadInConfig()

	cfg = AppConfig{
		DB: DB{
			Driver: v.GetString("app.db.driver"),
			Path:   v.GetString("app.db.path"),
			Host:   v.GetString("app.db.host"),
			Port:   v.GetInt("app.db.port"),
			User:   v.GetString("app.db.user"),
			Pass:   v.GetString("app.db.pass"),
			Name:   v.GetString("app.db.name"),
		},
		LogPath:     v.GetString("app.log_path"),
		DefaultUser: v.GetString("app.default_user"),
	}
	return cfg
}

func Get() AppConfig { return cfg }

// dataDir is where the database and log live unless configured otherwise.
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "bmitrack")
	}
	return filepath.Join(home, ".bmitrack")
}
