package configs

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML encodes v to a TOML file, creating parent directories as needed.
func SaveTOML(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(v)
}

// LoadTOML decodes a TOML file into v.
func LoadTOML(path string, v any) error {
	_, err := toml.DecodeFile(path, v)
	return err
}
