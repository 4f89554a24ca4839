package localstate

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	envHome       = "STUDY_PLANNER_HOME" // override for tests
	dirName       = ".study-planner"     // default under $HOME
	mirrorKeyFile = "planner_estudos_cache.json"
)

// DataDir returns the directory where client-side state is stored (~/.study-planner).
// It creates the directory with 0700 permissions if it does not exist.
func DataDir() (string, error) {
	if custom := os.Getenv(envHome); custom != "" {
		if err := os.MkdirAll(custom, 0o700); err != nil {
			return "", err
		}
		return custom, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user home: %w", err)
	}
	dir := filepath.Join(home, dirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// MirrorPath returns the absolute path of the client's persisted study mirror.
func MirrorPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, mirrorKeyFile), nil
}
