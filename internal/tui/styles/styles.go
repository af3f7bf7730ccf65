package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	HiveGold   = lipgloss.Color("#F0B429")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(HiveGold)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(HiveGold)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(HiveGold).
			Padding(0, 1)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(HiveGold).
			Padding(0, 1).
			Bold(true)
)

// Raw indicator characters (unstyled)
const (
	FavoriteChar  = "♥"
	WatchlistChar = "◎"
	LikeChar      = "▲"
)

// Indicator styles
var (
	FavoriteOn  = lipgloss.NewStyle().Foreground(Red).Render(FavoriteChar)
	FavoriteOff = lipgloss.NewStyle().Foreground(DimGray).Render(FavoriteChar)
	WatchlistOn = lipgloss.NewStyle().Foreground(Blue).Render(WatchlistChar)
)

// StatusBarStyle renders the bottom status line
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(LightGray).
	Background(SlateDark).
	Padding(0, 1)
