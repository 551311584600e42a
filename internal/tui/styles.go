package tui

import "github.com/charmbracelet/lipgloss"

// Theme is one switchable color scheme. Unlike terminal-adaptive styling,
// the reader owns its palette: the user toggles light/dark and the choice
// is persisted across sessions.
type Theme struct {
	Name string

	Header       lipgloss.Style
	HeaderDate   lipgloss.Style
	DayHeading   lipgloss.Style
	Section      lipgloss.Style
	Title        lipgloss.Style
	TitleActive  lipgloss.Style
	Summary      lipgloss.Style
	Link         lipgloss.Style
	Match        lipgloss.Style
	Saved        lipgloss.Style
	Chip         lipgloss.Style
	Dim          lipgloss.Style
	Notice       lipgloss.Style
	NoResults    lipgloss.Style
	StatusBar    lipgloss.Style
	Accent       lipgloss.Style
	TocEntry     lipgloss.Style
	TocActive    lipgloss.Style
	TocPane      lipgloss.Style
	ContentPane  lipgloss.Style
	FilterActive lipgloss.Style
	FilterOff    lipgloss.Style
	HelpCard     lipgloss.Style
	SimilarCard  lipgloss.Style
}

type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	dim       lipgloss.Color
	accent    lipgloss.Color
	border    lipgloss.Color
	green     lipgloss.Color
	highlight lipgloss.Color
	statusBg  lipgloss.Color
	statusFg  lipgloss.Color
	chipBg    lipgloss.Color
}

func buildTheme(name string, p palette) Theme {
	return Theme{
		Name:        name,
		Header:      lipgloss.NewStyle().Bold(true).Foreground(p.primary).PaddingLeft(1),
		HeaderDate:  lipgloss.NewStyle().Foreground(p.dim),
		DayHeading:  lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		Title:       lipgloss.NewStyle().Foreground(p.primary).Bold(true),
		TitleActive: lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		Summary:     lipgloss.NewStyle().Foreground(p.secondary),
		Link:        lipgloss.NewStyle().Foreground(p.dim).Italic(true),
		Match:       lipgloss.NewStyle().Foreground(p.highlight).Bold(true),
		Saved:       lipgloss.NewStyle().Foreground(p.green),
		Chip: lipgloss.NewStyle().
			Foreground(p.statusFg).
			Background(p.chipBg).
			Padding(0, 1),
		Dim:       lipgloss.NewStyle().Foreground(p.dim),
		Notice:    lipgloss.NewStyle().Foreground(p.accent),
		NoResults: lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		StatusBar: lipgloss.NewStyle().
			Background(p.statusBg).
			Foreground(p.statusFg).
			PaddingLeft(1).
			PaddingRight(1),
		Accent:    lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		TocEntry:  lipgloss.NewStyle().Foreground(p.secondary),
		TocActive: lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		TocPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border),
		ContentPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border),
		FilterActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(p.primary).
			Padding(0, 1).
			Bold(true),
		FilterOff: lipgloss.NewStyle().
			Foreground(p.secondary).
			Background(p.chipBg).
			Padding(0, 1),
		HelpCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(1, 3),
		SimilarCard: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.border).
			PaddingLeft(1),
	}
}

// LightTheme is the default scheme.
func LightTheme() Theme {
	return buildTheme("light", palette{
		primary:   lipgloss.Color("#5A56E0"),
		secondary: lipgloss.Color("#3D3D3D"),
		dim:       lipgloss.Color("#9B9B9B"),
		accent:    lipgloss.Color("#D13D7E"),
		border:    lipgloss.Color("#DBDBDB"),
		green:     lipgloss.Color("#04B575"),
		highlight: lipgloss.Color("#B8860B"),
		statusBg:  lipgloss.Color("#E8E8E8"),
		statusFg:  lipgloss.Color("#3D3D3D"),
		chipBg:    lipgloss.Color("#EEEEEE"),
	})
}

func DarkTheme() Theme {
	return buildTheme("dark", palette{
		primary:   lipgloss.Color("#7571F9"),
		secondary: lipgloss.Color("#ABABAB"),
		dim:       lipgloss.Color("#626262"),
		accent:    lipgloss.Color("#F25D94"),
		border:    lipgloss.Color("#383838"),
		green:     lipgloss.Color("#25D366"),
		highlight: lipgloss.Color("#FFD75F"),
		statusBg:  lipgloss.Color("#16213E"),
		statusFg:  lipgloss.Color("#ABABAB"),
		chipBg:    lipgloss.Color("#2A2A3E"),
	})
}

// ThemeByName resolves a persisted preference, defaulting to light.
func ThemeByName(name string) Theme {
	if name == "dark" {
		return DarkTheme()
	}
	return LightTheme()
}
