package config

import (
	"encoding/json"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
)

// MarshalOptions controls how a Strategy renders a config.
type MarshalOptions struct {
	IncludeComments bool
	Indent          int
}

// Strategy marshals and unmarshals an ExtendedConfig in one file format.
type Strategy interface {
	Name() string
	Marshal(cfg *ExtendedConfig, opts MarshalOptions) ([]byte, error)
	Unmarshal(data []byte) (*ExtendedConfig, error)
}

// GetStrategy resolves a Strategy by format name (yaml, json, toml).
func GetStrategy(format string) (Strategy, error) {
	switch format {
	case "yaml", "yml", "":
		return NewYAMLStrategy(), nil
	case "json":
		return &JSONStrategy{}, nil
	case "toml":
		return &TOMLStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown config format: %s", format)
	}
}

// JSONStrategy implements Strategy for JSON format.
type JSONStrategy struct{}

func (s *JSONStrategy) Name() string { return "json" }

func (s *JSONStrategy) Marshal(cfg *ExtendedConfig, opts MarshalOptions) ([]byte, error) {
	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	data, err := json.MarshalIndent(cfg, "", fmt.Sprintf("%*s", indent, ""))
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return data, nil
}

func (s *JSONStrategy) Unmarshal(data []byte) (*ExtendedConfig, error) {
	var cfg ExtendedConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal json: %w", err)
	}
	return &cfg, nil
}

// TOMLStrategy implements Strategy for TOML format.
type TOMLStrategy struct{}

func (s *TOMLStrategy) Name() string { return "toml" }

func (s *TOMLStrategy) Marshal(cfg *ExtendedConfig, opts MarshalOptions) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal toml: %w", err)
	}
	return data, nil
}

func (s *TOMLStrategy) Unmarshal(data []byte) (*ExtendedConfig, error) {
	var cfg ExtendedConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal toml: %w", err)
	}
	return &cfg, nil
}
