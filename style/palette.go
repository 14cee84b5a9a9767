package style

import "github.com/charmbracelet/lipgloss"

// ANSI colors, rendered with whatever theme the terminal uses.
var (
	Red      = lipgloss.Color("1")
	Green    = lipgloss.Color("2")
	Yellow   = lipgloss.Color("3")
	Blue     = lipgloss.Color("4")
	Purple   = lipgloss.Color("5")
	Cyan     = lipgloss.Color("6")
	White    = lipgloss.Color("7")
	HiPurple = lipgloss.Color("13")
)

// Player colors.
var (
	Accent    = lipgloss.Color("#cba6f7")
	Secondary = lipgloss.Color("#b4befe")
	Success   = lipgloss.Color("#a6e3a1")
	Warning   = lipgloss.Color("#f9e2af")
	Failure   = lipgloss.Color("#f38ba8")
	Subtle    = lipgloss.Color("#6c7086")
	Track     = lipgloss.Color("#313244")
)
