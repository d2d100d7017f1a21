package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "remind.db"

	appDirName = "remind"
)

type Keymap struct {
	Quit    string `toml:"quit"`
	Add     string `toml:"add"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
	PrevDay string `toml:"prev_day"`
	NextDay string `toml:"next_day"`
	Toggle  string `toml:"toggle"`
	Delete  string `toml:"delete"`
	Detail  string `toml:"detail"`
	Confirm string `toml:"confirm"`
	Cancel  string `toml:"cancel"`
	SetName string `toml:"set_name"`
}

type Config struct {
	DBPath     string `toml:"db_path"`
	WindowDays int    `toml:"window_days"`
	Keys       Keymap `toml:"keys"`
}

// ResolveConfigPath returns the config file location under the user's
// config directory, falling back to the working directory when the
// lookup fails.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 30
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultDBName
	}
	return filepath.Join(dir, appDirName, DefaultDBName)
}

func defaultConfig() Config {
	return Config{
		DBPath:     defaultDBPath(),
		WindowDays: 30,
		Keys: Keymap{
			Quit:    "q",
			Add:     "a",
			Up:      "k",
			Down:    "j",
			PrevDay: "h",
			NextDay: "l",
			Toggle:  " ",
			Delete:  "d",
			Detail:  "enter",
			Confirm: "enter",
			Cancel:  "esc",
			SetName: "n",
		},
	}
}
