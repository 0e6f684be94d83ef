package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// FindProjectNgaioRoot traverses up directories to find the project's Ngaio root.
// Returns the path to the project root if found, empty string otherwise.
// Stops searching one level above the user's home directory.
func FindProjectNgaioRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	for {
		if currentDir == path.Join(homeDir, "..") {
			return "", nil
		}

		ngaioDir := filepath.Join(currentDir, ".ngaio")
		fileInfo, err := os.Stat(ngaioDir)
		if err == nil {
			if fileInfo.IsDir() {
				return currentDir, nil
			}
		} else if !os.IsNotExist(err) {
			// Surface anything that's not "file not found" (like permission issues).
			return "", fmt.Errorf("error checking for .ngaio directory at %s: %w", currentDir, err)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}
