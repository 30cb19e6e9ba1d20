package tui

import "gossipbot/types"

// Messages for the tea program

// ProcessCompleteMsg is sent when an ingestion run finishes
type ProcessCompleteMsg struct {
	Stats *types.IngestStats
	Err   error
}

// ArticlesLoadedMsg is sent when the recent-articles listing arrives
type ArticlesLoadedMsg struct {
	Articles []types.ArticleSummary
	Err      error
}

// AnswerMsg is sent when a query has been answered
type AnswerMsg struct {
	Answer string
	Err    error
}
