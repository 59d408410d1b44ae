package geometry

import (
	"fmt"
	"strings"
)

// Shape selects the seat layout used around a table.
type Shape int

const (
	Oval Shape = iota
	TwoSidedRectangle
	FourSidedRectangle
)

var shapeNames = []string{
	"oval",
	"two_sided_rectangle",
	"four_sided_rectangle",
}

// Labels shown by the floor plan editor.
var shapeLabels = []string{
	"Oval",
	"Rectangle (two sides)",
	"Rectangle (four sides)",
}

func (s Shape) Valid() bool {
	return s >= Oval && s <= FourSidedRectangle
}

func (s Shape) String() string {
	if !s.Valid() {
		return fmt.Sprintf("shape(%d)", int(s))
	}
	return shapeNames[s]
}

func (s Shape) Label() string {
	if !s.Valid() {
		return s.String()
	}
	return shapeLabels[s]
}

// ParseShape accepts either the wire name or the editor label, case-insensitively.
func ParseShape(raw string) (Shape, error) {
	value := strings.TrimSpace(raw)
	for i := range shapeNames {
		if strings.EqualFold(value, shapeNames[i]) || strings.EqualFold(value, shapeLabels[i]) {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("unknown table shape %q", raw)
}

func (s Shape) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown table shape %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
