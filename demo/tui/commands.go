package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"gossipbot/demo/client"
)

// runProcess creates a command to trigger an ingestion run
func runProcess(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		stats, err := c.Process()
		return ProcessCompleteMsg{Stats: stats, Err: err}
	}
}

// loadArticles creates a command to fetch the recent-articles listing
func loadArticles(c *client.Client, limit int) tea.Cmd {
	return func() tea.Msg {
		articles, err := c.Recent(limit)
		return ArticlesLoadedMsg{Articles: articles, Err: err}
	}
}

// askQuestion creates a command to submit a query
func askQuestion(c *client.Client, query string) tea.Cmd {
	return func() tea.Msg {
		answer, err := c.Query(query)
		return AnswerMsg{Answer: answer, Err: err}
	}
}
