package domain

import (
	"time"
)

type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhaseSubmission Phase = "submission"
	PhaseResults    Phase = "results"
	PhaseSelecting  Phase = "selecting"
	PhaseCompleted  Phase = "completed"
)

var Phases = []Phase{PhaseSetup, PhaseSubmission, PhaseResults, PhaseSelecting, PhaseCompleted}

func (p Phase) Valid() bool {
	switch p {
	case PhaseSetup, PhaseSubmission, PhaseResults, PhaseSelecting, PhaseCompleted:
		return true
	}
	return false
}

type Player struct {
	ID            int64     `yaml:"id"`
	Name          string    `yaml:"name"`
	Email         string    `yaml:"email"`
	Guess         *int      `yaml:"guess"` // nil for players added after submissions closed
	Timestamp     time.Time `yaml:"timestamp"`
	DraftPosition *int      `yaml:"draft_position"`
	IPAddress     string    `yaml:"ip_address,omitempty"`
}

func (p Player) HasGuess() bool {
	return p.Guess != nil
}

func (p Player) HasPosition() bool {
	return p.DraftPosition != nil
}

type DeletedPlayer struct {
	ID                int64     `yaml:"id"`
	OriginalID        int64     `yaml:"original_id"`
	Name              string    `yaml:"name"`
	Email             string    `yaml:"email"`
	Guess             *int      `yaml:"guess"`
	OriginalTimestamp time.Time `yaml:"original_timestamp"`
	DeletedTimestamp  time.Time `yaml:"deleted_timestamp"`
	DeletedReason     string    `yaml:"deleted_reason"`
	IPAddress         string    `yaml:"ip_address,omitempty"`
}

type GameState struct {
	Phase              Phase      `yaml:"phase"`
	WinnerID           *int64     `yaml:"winner_id"`
	TargetNumber       *float64   `yaml:"target_number"`
	AverageGuess       *float64   `yaml:"average_guess"`
	NumTeams           int        `yaml:"num_teams"`
	SubmissionDeadline *time.Time `yaml:"submission_deadline"` // UTC
	DevMode            bool       `yaml:"dev_mode"`
	LeagueName         string     `yaml:"league_name"`
	IsSimulation       bool       `yaml:"is_simulation"`
	IsInitialized      bool       `yaml:"is_initialized"`
}

// ClearResults drops the scoring outcome of the previous round.
func (g *GameState) ClearResults() {
	g.WinnerID = nil
	g.TargetNumber = nil
	g.AverageGuess = nil
}

type LeagueMember struct {
	ID        int64     `yaml:"id"`
	Name      string    `yaml:"name"`
	Active    bool      `yaml:"active"`
	CreatedAt time.Time `yaml:"created_at"`
}

type Backup struct {
	ID        string
	Reason    string
	CreatedAt time.Time
	SizeBytes int64
}
