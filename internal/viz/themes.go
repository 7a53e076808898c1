package viz

import "github.com/gdamore/tcell/v2"

// Theme defines the colors used by the renderer
type Theme struct {
	Name       string
	Background tcell.Color
	Marker     tcell.Color
	Reference  tcell.Color
	Text       tcell.Color
	Muted      tcell.Color
}

var (
	// ThemePaper mirrors the first prototype: black shapes on white.
	ThemePaper = Theme{
		Name:       "paper",
		Background: tcell.ColorWhite,
		Marker:     tcell.ColorBlack,
		Reference:  tcell.ColorBlack,
		Text:       tcell.ColorBlack,
		Muted:      tcell.ColorGray,
	}

	ThemeTerminal = Theme{
		Name:       "terminal",
		Background: tcell.ColorReset,
		Marker:     tcell.ColorWhite,
		Reference:  tcell.ColorGray,
		Text:       tcell.ColorWhite,
		Muted:      tcell.ColorGray,
	}

	ThemeRetro = Theme{
		Name:       "retro",
		Background: tcell.ColorBlack,
		Marker:     tcell.ColorLime,
		Reference:  tcell.ColorGreen,
		Text:       tcell.ColorLime,
		Muted:      tcell.ColorGreen,
	}

	Themes = []Theme{
		ThemeTerminal,
		ThemePaper,
		ThemeRetro,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeTerminal, false
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) base() tcell.Style {
	return tcell.StyleDefault.Background(t.Background)
}

func (t Theme) style(fg tcell.Color) tcell.Style {
	return t.base().Foreground(fg)
}
