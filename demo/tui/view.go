package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("💬 Gossip Bot Demo"))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Last run statistics
	if m.Stats != nil {
		stats := fmt.Sprintf("📊 Last run: %d processed | %d failed | %d chunks",
			m.Stats.ArticlesProcessed, m.Stats.ArticlesFailed, m.Stats.TotalChunks)
		b.WriteString(InfoStyle.Render(stats))
		b.WriteString("\n\n")
	}

	// Query prompt
	if m.State == StateAsking {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	// Last answer
	if m.Answer != "" && m.State != StateAsking {
		b.WriteString(BoxStyle.Render(m.formatAnswer()))
		b.WriteString("\n\n")
	}

	// Recent articles
	if len(m.Articles) > 0 && m.State != StateAsking {
		b.WriteString(InfoStyle.Render("📰 Recent articles:"))
		b.WriteString("\n")
		for i, a := range m.Articles {
			line := fmt.Sprintf("   %2d. %s (%s)", i+1, a.Title, a.Source)
			b.WriteString(InfoStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Help text
	switch m.State {
	case StateAsking:
		b.WriteString(InfoStyle.Render("Enter to ask | Esc to cancel | Ctrl+C to quit"))
	case StateIdle, StateError:
		b.WriteString(InfoStyle.Render("Press 'p' to process feeds | 'r' to list articles | 'a' to ask | 'q' to quit"))
	default:
		b.WriteString(InfoStyle.Render("Press 'q' or Ctrl+C to quit"))
	}

	return b.String()
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	switch m.State {
	case StateIdle:
		return HighlightStyle.Render("👋 Ready")
	case StateProcessing:
		return StatusStyle.Render("⏳ Fetching feeds and ingesting articles (this can take a while)...")
	case StateLoading:
		return StatusStyle.Render("📥 Loading recent articles...")
	case StateAsking:
		return HighlightStyle.Render("❓ Ask about the gossip")
	case StateAnswering:
		return StatusStyle.Render("🤔 Thinking...")
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf("❌ Error: %s", errMsg))
	default:
		return ""
	}
}

// formatAnswer formats the last question and answer for display
func (m Model) formatAnswer() string {
	var b strings.Builder
	if m.Question != "" {
		b.WriteString(HighlightStyle.Render("Q: " + m.Question))
		b.WriteString("\n\n")
	}
	b.WriteString(m.Answer)
	return b.String()
}
