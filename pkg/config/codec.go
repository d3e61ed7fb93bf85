package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	swaperrors "kubegems.io/swapimport/pkg/errors"
)

// Load reads and validates the config at path. An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, swaperrors.NewConfigInvalidError(path, err)
	}
	cfg, err := Parse(content)
	if err != nil {
		return nil, swaperrors.NewConfigInvalidError(path, err)
	}
	return cfg, nil
}

// Parse decodes a config document. Absent fields stay absent, only the maps
// are initialised.
func Parse(content []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.NewDecoder(bytes.NewReader(content)).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ensureMaps()
	return cfg, nil
}

// Marshal renders cfg with empty optional fields omitted and map keys sorted,
// so equal configs always render to equal bytes.
func Marshal(cfg *Config) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, swaperrors.NewInternalError(err)
	}
	if err := enc.Close(); err != nil {
		return nil, swaperrors.NewInternalError(err)
	}
	return buf.Bytes(), nil
}
