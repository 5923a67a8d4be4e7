package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "telos.db"
	DefaultLogName        = "telos.log"
	EnvConfigPath         = "TELOS_CONFIG"
)

type Keymap struct {
	Quit          string `toml:"quit"`
	Add           string `toml:"add"`
	Up            string `toml:"up"`
	Down          string `toml:"down"`
	Toggle        string `toml:"toggle"`
	Delete        string `toml:"delete"`
	Detail        string `toml:"detail"`
	Confirm       string `toml:"confirm"`
	Cancel        string `toml:"cancel"`
	Edit          string `toml:"edit"`
	MoveUp        string `toml:"move_up"`
	MoveDown      string `toml:"move_down"`
	PrevDay       string `toml:"prev_day"`
	NextDay       string `toml:"next_day"`
	Today         string `toml:"today"`
	SwitchView    string `toml:"switch_view"`
	FocusGoals    string `toml:"focus_goals"`
	AddGoal       string `toml:"add_goal"`
	IncrementGoal string `toml:"increment_goal"`
}

type Config struct {
	DBPath         string `toml:"db_path"`
	LogPath        string `toml:"log_path"`
	LogDevelopment bool   `toml:"log_development"`
	DefaultView    string `toml:"default_view"`
	Keys           Keymap `toml:"keys"`
}

// ResolveConfigPath picks the config file location: TELOS_CONFIG when set,
// otherwise telos/config.toml under the user config directory, falling back
// to the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "telos", DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist. Relative paths inside the file are resolved
// against the file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.DefaultView != "day" && cfg.DefaultView != "week" {
		cfg.DefaultView = "day"
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

func (c Config) resolve(dir string) Config {
	c.DBPath = resolvePath(dir, c.DBPath)
	c.LogPath = resolvePath(dir, c.LogPath)
	return c
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || strings.HasPrefix(p, "file:") {
		return p
	}
	return filepath.Join(dir, p)
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:      DefaultDBName,
		LogPath:     DefaultLogName,
		DefaultView: "day",
		Keys: Keymap{
			Quit:          "q",
			Add:           "a",
			Up:            "k",
			Down:          "j",
			Toggle:        " ",
			Delete:        "d",
			Detail:        "enter",
			Confirm:       "enter",
			Cancel:        "esc",
			Edit:          "e",
			MoveUp:        "K",
			MoveDown:      "J",
			PrevDay:       "h",
			NextDay:       "l",
			Today:         "t",
			SwitchView:    "v",
			FocusGoals:    "tab",
			AddGoal:       "g",
			IncrementGoal: "+",
		},
	}
}
