package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/document"
)

// Style controls the editor's rendering. Mark styles layer over Text in
// the order bold, italic, underline, strike, code.
type Style struct {
	Gutter       lipgloss.Style
	GutterActive lipgloss.Style

	Text      lipgloss.Style
	Bold      lipgloss.Style
	Italic    lipgloss.Style
	Underline lipgloss.Style
	Strike    lipgloss.Style
	Code      lipgloss.Style

	// Image renders the placeholder label of an image block.
	Image     lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:       gutter,
		GutterActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:         lipgloss.NewStyle(),
		Bold:         lipgloss.NewStyle().Bold(true),
		Italic:       lipgloss.NewStyle().Italic(true),
		Underline:    lipgloss.NewStyle().Underline(true),
		Strike:       lipgloss.NewStyle().Strikethrough(true),
		Code:         lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Background(lipgloss.Color("236")),
		Image:        lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Italic(true),
		Selection:    lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:       lipgloss.NewStyle().Reverse(true),
	}
}

func (s Style) mark(m document.Mark) lipgloss.Style {
	switch m {
	case document.Bold:
		return s.Bold
	case document.Italic:
		return s.Italic
	case document.Underline:
		return s.Underline
	case document.Strike:
		return s.Strike
	default:
		return s.Code
	}
}

// forMarks returns Text with the style of every mark in ms applied.
func (s Style) forMarks(ms document.MarkSet) lipgloss.Style {
	st := s.Text
	for _, m := range ms.List() {
		st = s.mark(m).Inherit(st)
	}
	return st
}
