package domain

// Theme selects the look of a public page.
type Theme string

const (
	ThemeDefault  Theme = "default"
	ThemeGradient Theme = "gradient"
	ThemeNeon     Theme = "neon"
	ThemeMinimal  Theme = "minimal"
	ThemeOcean    Theme = "ocean"
	ThemeSunset   Theme = "sunset"
)

var premiumThemes = map[Theme]bool{
	ThemeDefault:  false,
	ThemeGradient: true,
	ThemeNeon:     true,
	ThemeMinimal:  true,
	ThemeOcean:    true,
	ThemeSunset:   true,
}

func (t Theme) Valid() bool {
	_, ok := premiumThemes[t]
	return ok
}

// Premium reports whether the theme requires an upgraded account.
func (t Theme) Premium() bool {
	return premiumThemes[t]
}

// ParseTheme maps stored values back to a theme, falling back to the default.
func ParseTheme(s string) Theme {
	if t := Theme(s); t.Valid() {
		return t
	}
	return ThemeDefault
}
