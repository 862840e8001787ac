package page

import "regexp"

// ThemeMode selects the light or dark colour tokens.
type ThemeMode string

const (
	ModeLight ThemeMode = "light"
	ModeDark  ThemeMode = "dark"
)

// Preset identifies a named colour preset.
type Preset string

const (
	PresetDefault Preset = "default"
	PresetOcean   Preset = "ocean"
	PresetSunset  Preset = "sunset"
	PresetForest  Preset = "forest"
	PresetPurple  Preset = "purple"
)

// DefaultBrandColor is the accent used when none has been chosen.
const DefaultBrandColor = "#3B82F6"

// PresetColors maps each preset to its primary brand colour.
var PresetColors = map[Preset]string{
	PresetDefault: DefaultBrandColor,
	PresetOcean:   "#0891B2",
	PresetSunset:  "#EA580C",
	PresetForest:  "#059669",
	PresetPurple:  "#7C3AED",
}

// ThemeConfig is the single theme instance of a session.
type ThemeConfig struct {
	Mode       ThemeMode `json:"mode"`
	BrandColor string    `json:"brandColor"`
	Preset     Preset    `json:"preset"`
}

// DefaultTheme returns the theme a new session starts with.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		Mode:       ModeLight,
		BrandColor: DefaultBrandColor,
		Preset:     PresetDefault,
	}
}

// ThemePatch is a partial ThemeConfig; nil fields are left untouched.
type ThemePatch struct {
	Mode       *ThemeMode `json:"mode,omitempty"`
	BrandColor *string    `json:"brandColor,omitempty"`
	Preset     *Preset    `json:"preset,omitempty"`
}

// Apply shallow-merges p into t and returns the result.
func (p ThemePatch) Apply(t ThemeConfig) ThemeConfig {
	if p.Mode != nil {
		t.Mode = *p.Mode
	}
	if p.BrandColor != nil {
		t.BrandColor = *p.BrandColor
	}
	if p.Preset != nil {
		t.Preset = *p.Preset
	}
	return t
}

var reHexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// IsHexColor reports whether s is a #rgb, #rrggbb or #rrggbbaa colour.
func IsHexColor(s string) bool {
	return reHexColor.MatchString(s)
}
