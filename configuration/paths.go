package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pguedes/gesticle/utils"
)

const (
	appDir         = "gesticle"
	legacyDir      = ".gesticle"
	configFileName = "config.toml"
	logFileName    = "gesticle.log"
	systemConfig   = "/etc/gesticle/config.toml"
)

var configFileNames = []string{"config.toml", "config.ini", "config.yaml", "config.yml"}

// SearchPaths returns the configuration locations in lookup order
func SearchPaths() []string {
	var paths []string
	for _, name := range configFileNames {
		paths = append(paths, filepath.Join(xdg.ConfigHome, appDir, name))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, legacyDir, configFileName))
	}

	return append(paths, systemConfig)
}

// ConfigFilePath picks the configuration file to load. A non-empty override
// must exist; otherwise the first existing search path wins.
func ConfigFilePath(override string) (string, error) {
	if override != "" {
		path, err := utils.ExpandHome(override)
		if err != nil {
			return "", err
		}
		if !utils.FileExists(path) {
			return "", fmt.Errorf("%w: %s", ErrConfigMissing, path)
		}
		return path, nil
	}

	candidates := SearchPaths()
	path, ok := utils.FirstExisting(candidates...)
	if !ok {
		return "", fmt.Errorf("%w: looked in %v", ErrConfigMissing, candidates)
	}

	utils.Verbose("using configuration file %s", path)
	return path, nil
}

// LogFilePath returns where the daemon writes its log
func LogFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, legacyDir, logFileName), nil
	}

	path, err := xdg.StateFile(filepath.Join(appDir, logFileName))
	if err != nil {
		return "", fmt.Errorf("failed to resolve log file path: %w", err)
	}
	return path, nil
}
