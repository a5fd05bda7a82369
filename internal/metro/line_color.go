package metro

import (
	"fmt"
	"strings"
)

// LineColor identifies a metro line. The set of colors is closed.
type LineColor string

const (
	Red    LineColor = "red"
	Blue   LineColor = "blue"
	Green  LineColor = "green"
	Yellow LineColor = "yellow"
	Orange LineColor = "orange"
	Purple LineColor = "purple"
)

var displayNames = map[LineColor]string{
	Red:    "Красная",
	Blue:   "Синяя",
	Green:  "Зелёная",
	Yellow: "Жёлтая",
	Orange: "Оранжевая",
	Purple: "Фиолетовая",
}

// ParseLineColor converts a case-insensitive color tag into a LineColor
func ParseLineColor(s string) (LineColor, error) {
	c := LineColor(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: line color %q", ErrNotFound, s)
	}
	return c, nil
}

// Valid reports whether c is one of the known colors
func (c LineColor) Valid() bool {
	_, ok := displayNames[c]
	return ok
}

// DisplayName returns the name shown on station signage
func (c LineColor) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

func (c LineColor) String() string {
	return string(c)
}
