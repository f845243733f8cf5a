package console

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack/internal/game"
)

// Static styles for table narration
var (
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	WelcomeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	NeutralStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#45B7D1"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// StyleFor returns the style used for a line of the given tone.
func StyleFor(tone game.Tone) lipgloss.Style {
	switch tone {
	case game.ToneGood:
		return SuccessStyle
	case game.ToneBad:
		return ErrorStyle
	case game.ToneNotice:
		return NoticeStyle
	default:
		return NeutralStyle
	}
}
