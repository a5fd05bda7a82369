package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// NetworkLayout describes the lines and stations of a metro network
type NetworkLayout struct {
	City  string       `yaml:"city" validate:"required"`
	Lines []LineLayout `yaml:"lines" validate:"required,min=1,dive"`
}

// LineLayout lists the stations of one line in physical order
type LineLayout struct {
	Color    string          `yaml:"color" validate:"required,oneof=red blue green yellow orange purple"`
	Stations []StationLayout `yaml:"stations" validate:"required,min=1,dive"`
}

// StationLayout describes a station. TravelTime is the time from the previous
// station and must be omitted for the first one.
type StationLayout struct {
	Name       string           `yaml:"name" validate:"required"`
	TravelTime string           `yaml:"travelTime" validate:"omitempty"`
	Transfers  []TransferLayout `yaml:"transfers" validate:"omitempty,dive"`
}

// TransferLayout names a station on another line
type TransferLayout struct {
	Color   string `yaml:"color" validate:"required,oneof=red blue green yellow orange purple"`
	Station string `yaml:"station" validate:"required"`
}

// LoadLayout reads and validates a network layout file
func LoadLayout(path string) (*NetworkLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network layout: %w", err)
	}
	return ParseLayout(data)
}

// ParseLayout decodes and validates a YAML network layout
func ParseLayout(data []byte) (*NetworkLayout, error) {
	var layout NetworkLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse network layout: %w", err)
	}

	v := validator.New()
	if err := v.Struct(layout); err != nil {
		return nil, fmt.Errorf("invalid network layout: %w", err)
	}
	return &layout, nil
}
