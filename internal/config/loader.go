package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/pingboard/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".pingboard.yaml"
	// GlobalConfigDir is the directory for global config, under $HOME.
	GlobalConfigDir = ".config/pingboard"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix namespaces environment overrides, e.g. PINGBOARD_INTERVAL.
	EnvPrefix = "PINGBOARD"
)

// Load reads config from the specified path on top of the defaults.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found: "+path,
				"Run 'pingboard init' to create one, or pass targets on the command line.")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file: "+path,
			"Check the file exists and is valid YAML.")
	}
	return parse(v)
}

// LoadOrDefault loads the config found by Find, or returns defaults when no
// file exists. Targets given on the command line make a config file optional.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return parse(newViper())
	}
	return Load(path)
}

// Find locates the config file:
//  1. Explicit path (from --config)
//  2. .pingboard.yaml in the current directory
//  3. ~/.config/pingboard/config.yaml
//
// Returns an empty path when no file is found, which is not an error.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Specified config file not found: "+explicit,
				"Check the path is correct.")
		}
		return explicit, nil
	}

	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, ConfigFileName)
		if _, err := os.Stat(local); err == nil {
			return local, nil
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}
	return "", nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("protocol", def.Protocol)
	v.SetDefault("interval", def.Interval)
	v.SetDefault("port", def.Port)
	v.SetDefault("history", def.History)
	v.SetDefault("ascii", def.ASCII)
	return v
}

func parse(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config file",
			"Check field names and value types against 'pingboard init' output.")
	}
	return &cfg, nil
}
