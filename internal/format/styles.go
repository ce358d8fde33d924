package format

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	meStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))  // cyan
	themStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))  // yellow
	dateStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	unreadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))  // red
	imessageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))  // blue
	smsStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))  // green
	rcsStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))  // magenta
	grayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	boldStyle     = lipgloss.NewStyle().Bold(true)
	fileStyle     = lipgloss.NewStyle().Underline(true)
	retractStyle  = lipgloss.NewStyle().Faint(true).Strikethrough(true)
)

// Dim, Green, and Red style status lines printed by the commands.
func Dim(s string) string   { return dimStyle.Render(s) }
func Green(s string) string { return smsStyle.Render(s) }
func Red(s string) string   { return unreadStyle.Render(s) }

func serviceBadge(service string) string {
	switch {
	case strings.EqualFold(service, "imessage"):
		return imessageStyle.Render("[iMessage]")
	case strings.EqualFold(service, "sms"):
		return smsStyle.Render("[SMS]")
	case strings.EqualFold(service, "rcs"):
		return rcsStyle.Render("[RCS]")
	default:
		return grayStyle.Render("[" + service + "]")
	}
}
