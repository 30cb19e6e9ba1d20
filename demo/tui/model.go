package tui

import (
	"gossipbot/demo/client"
	"gossipbot/types"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the application state machine
type State string

const (
	StateIdle       State = "idle"
	StateProcessing State = "processing"
	StateLoading    State = "loading"
	StateAsking     State = "asking"
	StateAnswering  State = "answering"
	StateError      State = "error"
)

// recentListLimit caps how many articles the browse view requests.
const recentListLimit = 20

// Model represents the TUI client state (thin client over the API)
type Model struct {
	Client *client.Client

	State    State
	Stats    *types.IngestStats
	Articles []types.ArticleSummary
	Question string
	Answer   string
	Err      error

	input textinput.Model
}

// NewModel creates a new TUI model
func NewModel(apiURL string) Model {
	ti := textinput.New()
	ti.Placeholder = "Who broke up this week?"
	ti.CharLimit = 300
	ti.Width = 60

	return Model{
		Client: client.NewClient(apiURL),
		State:  StateIdle,
		input:  ti,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return nil
}
