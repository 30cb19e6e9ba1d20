package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case ProcessCompleteMsg:
		return m.handleProcessComplete(msg)
	case ArticlesLoadedMsg:
		return m.handleArticlesLoaded(msg)
	case AnswerMsg:
		return m.handleAnswer(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The query prompt owns the keyboard while it is focused
	if m.State == StateAsking {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.State = StateIdle
			m.input.Blur()
			m.input.Reset()
			return m, nil
		case "enter":
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			m.Question = query
			m.State = StateAnswering
			m.input.Blur()
			m.input.Reset()
			return m, askQuestion(m.Client, query)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "p", "P":
		if m.State == StateIdle || m.State == StateError {
			m.State = StateProcessing
			m.Err = nil
			return m, runProcess(m.Client)
		}
	case "r", "R":
		if m.State == StateIdle || m.State == StateError {
			m.State = StateLoading
			m.Err = nil
			return m, loadArticles(m.Client, recentListLimit)
		}
	case "a", "A":
		if m.State == StateIdle || m.State == StateError {
			m.State = StateAsking
			m.Err = nil
			m.input.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

// handleProcessComplete processes ingestion-run completion
func (m Model) handleProcessComplete(msg ProcessCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Stats = msg.Stats
	// Refresh the listing so the new run shows up immediately
	m.State = StateLoading
	return m, loadArticles(m.Client, recentListLimit)
}

// handleArticlesLoaded processes the recent-articles listing
func (m Model) handleArticlesLoaded(msg ArticlesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Articles = msg.Articles
	m.State = StateIdle
	return m, nil
}

// handleAnswer processes a query answer
func (m Model) handleAnswer(msg AnswerMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Answer = msg.Answer
	m.State = StateIdle
	return m, nil
}
