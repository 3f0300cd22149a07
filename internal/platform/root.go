package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the configuration file looked up by FindConfig.
const ConfigFileName = "formpost.yaml"

// FindConfig looks upwards from startDir for a formpost.yaml file and
// returns its absolute path.
func FindConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found", ConfigFileName)
}
