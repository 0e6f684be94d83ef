package utils

import (
	"os"
	"os/user"
	"path/filepath"
)

// GetUsername returns the current username.
func GetUsername() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// GetHostname returns the system hostname.
func GetHostname() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", err
	}
	return hostname, nil
}

// GetProjectName returns the name of the current project (directory).
// Returns an empty name for uninitialized projects rather than an error so
// that non-init commands do not crash on a fresh repository.
func GetProjectName() (string, error) {
	projectRoot, err := FindProjectNgaioRoot()
	if err != nil {
		return "", err
	}
	if projectRoot == "" {
		return "", nil
	}
	return filepath.Base(projectRoot), nil
}
