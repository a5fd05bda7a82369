package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrEmptySerial indicates the pass serial is empty
	ErrEmptySerial = errors.New("pass serial cannot be empty")

	// ErrInvalidSerial indicates the pass serial is not "a" followed by digits
	ErrInvalidSerial = errors.New("pass serial must be the letter a followed by at least four digits, e.g. a0001")

	// ErrEmptyStation indicates the station name is empty
	ErrEmptyStation = errors.New("station name cannot be empty")

	// ErrInvalidStation indicates the station name contains unsupported characters
	ErrInvalidStation = errors.New("station name can only contain letters, digits, spaces, dots, apostrophes and dashes")
)

// serialRegex matches a sanitized pass serial
var serialRegex = regexp.MustCompile(`^a\d{4,}$`)

// stationRegex matches station names in any script
var stationRegex = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} .'\-]*$`)

// whitespace collapses runs of blanks in station names
var whitespace = regexp.MustCompile(`\s+`)

// SerialValidator handles pass serial and station name validation
type SerialValidator struct{}

// NewSerialValidator creates a new validator instance
func NewSerialValidator() *SerialValidator {
	return &SerialValidator{}
}

// Validate validates a pass serial.
// Accepts format: a0001 or A0001 or " a0001 "
// Returns the sanitized serial and an error if invalid
func (v *SerialValidator) Validate(serial string) (string, error) {
	sanitized := v.Sanitize(serial)
	if sanitized == "" {
		return "", ErrEmptySerial
	}

	if !serialRegex.MatchString(sanitized) {
		return "", ErrInvalidSerial
	}

	return sanitized, nil
}

// Sanitize trims and lowercases a pass serial
func (v *SerialValidator) Sanitize(serial string) string {
	return strings.ToLower(strings.TrimSpace(serial))
}

// IsValid is a convenience method that returns true if serial is valid
func (v *SerialValidator) IsValid(serial string) bool {
	_, err := v.Validate(serial)
	return err == nil
}

// ValidateStation validates a station name and collapses inner whitespace
func (v *SerialValidator) ValidateStation(name string) (string, error) {
	sanitized := whitespace.ReplaceAllString(strings.TrimSpace(name), " ")
	if sanitized == "" {
		return "", ErrEmptyStation
	}

	if !stationRegex.MatchString(sanitized) {
		return "", ErrInvalidStation
	}

	return sanitized, nil
}

// MustValidate validates and panics if invalid (use for testing only)
func (v *SerialValidator) MustValidate(serial string) string {
	sanitized, err := v.Validate(serial)
	if err != nil {
		panic(fmt.Sprintf("invalid pass serial %s: %v", serial, err))
	}
	return sanitized
}
