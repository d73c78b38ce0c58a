package ui

import (
	"fmt"
	"strings"

	"quran-tui/internal/api"
	"quran-tui/internal/scope"
	"quran-tui/internal/settings"
	"quran-tui/internal/tajwid"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.Accent).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(m.theme.Border)

	labelStyle := lipgloss.NewStyle().Foreground(m.theme.Secondary)
	helpStyle := lipgloss.NewStyle().Foreground(m.theme.Muted)
	errorStyle := lipgloss.NewStyle().Foreground(m.theme.Error).Bold(true)
	statusStyle := lipgloss.NewStyle().Foreground(m.theme.Accent)

	var header string
	if m.mode != modeReader {
		header = headerStyle.Render(m.textInput.Placeholder) + "\n" + m.textInput.View()
	} else {
		labels := labelStyle.Render(fmt.Sprintf("page %s · juz %s", m.pageLabel, m.juzLabel))
		header = headerStyle.Render(m.title + "  " + labels)
	}

	var help string
	switch {
	case m.loading:
		help = helpStyle.Render("Loading...")
	case m.mode != modeReader:
		help = helpStyle.Render("enter: go | esc: cancel")
	default:
		help = helpStyle.Render("j/k: verse | n/p: continue/back | c/v/g/z: goto | /: search | a: audio | b: bookmark | t/f/T: display | q: quit")
	}

	var footer string
	if m.errText != "" {
		footer = "\n" + errorStyle.Render(m.errText)
	} else if m.status != "" {
		footer = "\n" + statusStyle.Render(m.status)
	}

	return fmt.Sprintf("%s\n%s\n%s%s", header, m.viewport.View(), help, footer)
}

// refreshContent re-renders the verse list into the viewport. Called after
// every change that affects how verses are displayed.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.formatVerses())
}

func (m *Model) formatVerses() string {
	numStyle := lipgloss.NewStyle().Foreground(m.theme.Secondary)
	selectedNumStyle := lipgloss.NewStyle().Foreground(m.theme.BorderActive).Bold(true)
	arabicStyle := lipgloss.NewStyle().Foreground(m.theme.Primary)
	translationStyle := lipgloss.NewStyle().Foreground(m.theme.Muted).Width(max(20, m.width-8))

	var sb strings.Builder
	for i, v := range m.verses {
		marker := "  "
		ns := numStyle
		if i == m.selected {
			marker = "▸ "
			ns = selectedNumStyle
		}

		label := fmt.Sprintf("%d:%d", v.ChapterNumber, v.VerseNumber)
		if v.ChapterName != "" {
			label = v.ChapterName + " " + label
		}

		arabic := m.renderArabic(v)
		sb.WriteString(fmt.Sprintf("%s%s  %s\n", marker, ns.Render(label), arabicStyle.Render(arabic)))

		if m.settings.ShowTranslation && v.TranslationText != "" {
			sb.WriteString("    " + translationStyle.Render(api.StripFootnotes(v.TranslationText)) + "\n")
		}
		sb.WriteString("\n")
		if m.settings.FontSize == settings.FontLarge {
			sb.WriteString("\n")
		}
	}
	if len(m.verses) == 0 && !m.loading {
		if _, ok := m.scope.(scope.Search); ok {
			return "\n  No results."
		}
		return "\n  Nothing to show — pick a chapter, page, or juz."
	}
	return sb.String()
}

// renderArabic colorizes tajwid categories. The annotation is computed per
// render; the underlying verse text is never modified.
func (m *Model) renderArabic(v api.Verse) string {
	annotated := tajwid.Annotate(v.ArabicText)
	return tajwid.Render(annotated, func(ruleID, span string) string {
		color, ok := m.theme.Tajwid[ruleID]
		if !ok {
			return span
		}
		return lipgloss.NewStyle().Foreground(color).Render(span)
	})
}
