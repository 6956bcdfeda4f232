package config

import (
	"fmt"

	"whatfeeling/internal/palette"
	"whatfeeling/internal/ux"
)

// Theme selection values.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// GuidanceAuto lets the user's history pick the guidance level.
const GuidanceAuto = "auto"

// UXConfig holds presentation settings.
type UXConfig struct {
	// PickerColoring names the strategy used for candidate chips.
	PickerColoring string `yaml:"picker_coloring"`

	// SummaryColoring names the strategy used by the hierarchy panel and
	// the conclusion screen.
	SummaryColoring string `yaml:"summary_coloring"`

	// Theme is auto, light or dark. Auto asks the terminal.
	Theme string `yaml:"theme"`

	// AltScreen runs the wizard in the alternate screen buffer.
	AltScreen bool `yaml:"alt_screen"`

	// Guidance pins how much help the wheel shows: auto, minimal, standard
	// or tutorial. Auto follows the user's history.
	Guidance string `yaml:"guidance"`
}

// DefaultUXConfig returns the presentation defaults.
func DefaultUXConfig() *UXConfig {
	return &UXConfig{
		PickerColoring:  palette.NamePositional,
		SummaryColoring: palette.NameAncestry,
		Theme:           ThemeAuto,
		AltScreen:       true,
		Guidance:        GuidanceAuto,
	}
}

// Validate checks strategy names and the theme.
func (u *UXConfig) Validate() error {
	if err := validStrategy("ux.picker_coloring", u.PickerColoring); err != nil {
		return err
	}
	if err := validStrategy("ux.summary_coloring", u.SummaryColoring); err != nil {
		return err
	}
	switch u.Theme {
	case ThemeAuto, ThemeLight, ThemeDark, "":
	default:
		return fmt.Errorf("invalid ux.theme: %q (valid: auto, light, dark)", u.Theme)
	}
	if u.Guidance != "" && u.Guidance != GuidanceAuto {
		if _, ok := ux.ParseDisclosure(u.Guidance); !ok {
			return fmt.Errorf("invalid ux.guidance: %q (valid: auto, minimal, standard, tutorial)", u.Guidance)
		}
	}
	return nil
}
