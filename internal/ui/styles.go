package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todo-go/internal/render"
	"github.com/nibzard/todo-go/internal/session"
)

// Styles holds the lipgloss styles shared by both front-ends.
type Styles struct {
	Title   lipgloss.Style
	Item    lipgloss.Style
	Cursor  lipgloss.Style
	Counts  lipgloss.Style
	Help    lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Table   render.Styles
}

// DefaultStyles returns the terminal color scheme.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Item:    lipgloss.NewStyle(),
		Cursor:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Counts:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Info:    lipgloss.NewStyle(),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Table:   render.DefaultStyles(),
	}
}

// Notice renders a session notice in its level's color.
func (s Styles) Notice(n session.Notice) string {
	switch n.Level {
	case session.LevelSuccess:
		if n.Text == session.MsgGoodbye {
			return s.Success.Bold(true).Render(n.Text)
		}
		return s.Success.Render(n.Text)
	case session.LevelWarn:
		return s.Warn.Render(n.Text)
	case session.LevelError:
		return s.Error.Render(n.Text)
	default:
		return s.Info.Render(n.Text)
	}
}
