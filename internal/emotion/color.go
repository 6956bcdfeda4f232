package emotion

// Color is one of the fixed color categories a taxonomy node can carry.
type Color string

const (
	Blue   Color = "Blue"
	Red    Color = "Red"
	Yellow Color = "Yellow"
	Green  Color = "Green"
	Purple Color = "Purple"
	Pink   Color = "Pink"
	Gray   Color = "Gray"
	Orange Color = "Orange"
)

// DefaultColorValue is the display value for any unrecognized color token.
const DefaultColorValue = "#ffffff"

var colorValues = map[Color]string{
	Blue:   "#bfdbfe",
	Red:    "#fecaca",
	Yellow: "#fef08a",
	Green:  "#bbf7d0",
	Purple: "#e9d5ff",
	Pink:   "#fbcfe8",
	Gray:   "#e5e7eb",
	Orange: "#fed7aa",
}

// Colors returns the vocabulary in its canonical order.
func Colors() []Color {
	return []Color{Blue, Red, Yellow, Green, Purple, Pink, Gray, Orange}
}

// Valid reports whether c is part of the fixed vocabulary.
func (c Color) Valid() bool {
	_, ok := colorValues[c]
	return ok
}

// Value returns the hex display value for c.
func (c Color) Value() string {
	return ColorValue(string(c))
}

// ColorValue maps a raw color token to its hex display value.
// Lookup is case-sensitive and total: unknown tokens map to DefaultColorValue.
func ColorValue(token string) string {
	if v, ok := colorValues[Color(token)]; ok {
		return v
	}
	return DefaultColorValue
}
