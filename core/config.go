package core

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/caarlos0/env/v11"
	log "github.com/sirupsen/logrus"
)

// AppConfig defines application configuration parameters. Values come
// from config.json in the user config directory; environment variables
// override the file.
type AppConfig struct {
	Backend    string `json:"backend" env:"OBJSTORE_BACKEND"`
	DataPath   string `json:"data_path" env:"OBJSTORE_DATA_PATH"`
	ListenAddr string `json:"listen_addr" env:"OBJSTORE_LISTEN_ADDR"`
}

var (
	globalConfig *AppConfig
	configOnce   sync.Once
	configMu     sync.RWMutex
)

const (
	defaultBackendName = "jsonfile"
	defaultDataPath    = "./objstore_data"
	defaultListenAddr  = ":8080"
	configDirName      = "objstore"
	configFileName     = "config.json"
)

func defaultConfig() AppConfig {
	return AppConfig{
		Backend:    defaultBackendName,
		DataPath:   defaultDataPath,
		ListenAddr: defaultListenAddr,
	}
}

// getConfigFilePath determines the absolute path of the configuration file.
func getConfigFilePath() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		log.Warn("Unable to get user config directory, will use current directory")
		return configFileName, nil
	}
	return filepath.Join(userConfigDir, configDirName, configFileName), nil
}

// resolveConfig applies the precedence defaults -> config file -> environment.
func resolveConfig(path string) AppConfig {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		var loaded AppConfig
		if jsonErr := json.Unmarshal(data, &loaded); jsonErr != nil {
			log.Warnf("Failed to parse config file, will use default values: %v", jsonErr)
		} else {
			if loaded.Backend != "" {
				cfg.Backend = loaded.Backend
			}
			if loaded.DataPath != "" {
				cfg.DataPath = loaded.DataPath
			}
			if loaded.ListenAddr != "" {
				cfg.ListenAddr = loaded.ListenAddr
			}
		}
	} else if !os.IsNotExist(err) {
		log.Warnf("Failed to read config file %s: %v", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		log.Warnf("Failed to parse environment overrides: %v", err)
	}
	return cfg
}

// LoadConfig loads configuration once per process. A missing config file
// is initialized with default values and saved best-effort.
func LoadConfig() {
	configOnce.Do(func() {
		path, err := getConfigFilePath()
		if err != nil {
			log.Fatalf("Unable to determine config file path: %v", err)
		}

		cfg := resolveConfig(path)
		globalConfig = &cfg

		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Infof("Config file not found, will create default config at %s", path)
			if err := saveCurrentConfig(); err != nil {
				log.Warnf("Failed to save default config: %v", err)
			}
		}
	})
}

// saveCurrentConfig saves current in-memory configuration to file.
func saveCurrentConfig() error {
	path, err := getConfigFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(globalConfig, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetConfig returns a copy of current application configuration.
func GetConfig() AppConfig {
	LoadConfig() // Ensure loaded
	configMu.RLock()
	defer configMu.RUnlock()
	return *globalConfig
}

// UpdateConfig updates configuration in memory and persists it to file.
func UpdateConfig(newConfig AppConfig) error {
	LoadConfig() // Ensure initialized
	configMu.Lock()
	*globalConfig = newConfig
	configMu.Unlock()
	return saveCurrentConfig()
}
