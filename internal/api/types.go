package api

import "time"

// Procedure paths served by internal/server. Every call is a unary POST with a
// JSON body.
const (
	GameServiceName  = "draftorder.v1.GameService"
	AdminServiceName = "draftorder.v1.AdminService"

	GetGameStateProcedure     = "/" + GameServiceName + "/GetGameState"
	SubmitGuessProcedure      = "/" + GameServiceName + "/SubmitGuess"
	ListPlayersProcedure      = "/" + GameServiceName + "/ListPlayers"
	GetResultsProcedure       = "/" + GameServiceName + "/GetResults"
	GetSelectionProcedure     = "/" + GameServiceName + "/GetSelection"
	SelectPositionProcedure   = "/" + GameServiceName + "/SelectPosition"
	ListRosterProcedure       = "/" + GameServiceName + "/ListRoster"
	AdminLoginProcedure       = "/" + AdminServiceName + "/Login"
	InitializeGameProcedure   = "/" + AdminServiceName + "/InitializeGame"
	AdvancePhaseProcedure     = "/" + AdminServiceName + "/AdvancePhase"
	ResetToSetupProcedure     = "/" + AdminServiceName + "/ResetToSetup"
	FullResetProcedure        = "/" + AdminServiceName + "/FullReset"
	SimulateProcedure         = "/" + AdminServiceName + "/Simulate"
	QuickTestProcedure        = "/" + AdminServiceName + "/QuickTest"
	ToggleDevModeProcedure    = "/" + AdminServiceName + "/ToggleDevMode"
	ToggleSimulationProcedure = "/" + AdminServiceName + "/ToggleSimulation"
	UpdateLeagueNameProcedure = "/" + AdminServiceName + "/UpdateLeagueName"
	SetDeadlineProcedure      = "/" + AdminServiceName + "/SetDeadline"
	ListSubmissionsProcedure  = "/" + AdminServiceName + "/ListSubmissions"
	DeleteSubmissionProcedure = "/" + AdminServiceName + "/DeleteSubmission"
	ListDeletedProcedure      = "/" + AdminServiceName + "/ListDeletedPlayers"
	AddLatePlayerProcedure    = "/" + AdminServiceName + "/AddLatePlayer"
	UploadRosterProcedure     = "/" + AdminServiceName + "/UploadRoster"
	ClearRosterProcedure      = "/" + AdminServiceName + "/ClearRoster"
	CreateBackupProcedure     = "/" + AdminServiceName + "/CreateBackup"
	ListBackupsProcedure      = "/" + AdminServiceName + "/ListBackups"
	RestoreBackupProcedure    = "/" + AdminServiceName + "/RestoreBackup"
	DeleteBackupProcedure     = "/" + AdminServiceName + "/DeleteBackup"
	GetBackupExportProcedure  = "/" + AdminServiceName + "/GetBackupExport"
)

type Empty struct{}

type GameState struct {
	Phase              string     `json:"phase"`
	WinnerID           *int64     `json:"winnerId,omitempty"`
	WinnerName         string     `json:"winnerName,omitempty"`
	TargetNumber       *float64   `json:"targetNumber,omitempty"`
	AverageGuess       *float64   `json:"averageGuess,omitempty"`
	NumTeams           int        `json:"numTeams"`
	SubmissionDeadline *time.Time `json:"submissionDeadline,omitempty"`
	DevMode            bool       `json:"devMode"`
	LeagueName         string     `json:"leagueName"`
	IsSimulation       bool       `json:"isSimulation"`
	IsInitialized      bool       `json:"isInitialized"`
	SubmissionsOpen    bool       `json:"submissionsOpen"`
	PlayerCount        int        `json:"playerCount"`
}

type Player struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Guess         *int      `json:"guess,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	DraftPosition *int      `json:"draftPosition,omitempty"`
	IPAddress     string    `json:"ipAddress,omitempty"`
}

type DeletedPlayer struct {
	ID                int64     `json:"id"`
	OriginalID        int64     `json:"originalId"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Guess             *int      `json:"guess,omitempty"`
	OriginalTimestamp time.Time `json:"originalTimestamp"`
	DeletedTimestamp  time.Time `json:"deletedTimestamp"`
	DeletedReason     string    `json:"deletedReason"`
	IPAddress         string    `json:"ipAddress,omitempty"`
}

type LeagueMember struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Backup struct {
	ID        string    `json:"id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
	SizeBytes int64     `json:"sizeBytes"`
}

type SubmitGuessRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Guess int    `json:"guess"`
}

type PlayerResponse struct {
	Player Player `json:"player"`
}

type PlayersResponse struct {
	Players []Player `json:"players"`
}

type RankedPlayer struct {
	Player   Player  `json:"player"`
	Distance float64 `json:"distance"`
}

type ResultsResponse struct {
	Average float64        `json:"average"`
	Target  float64        `json:"target"`
	Winner  Player         `json:"winner"`
	Ranked  []RankedPlayer `json:"ranked"`
}

type SelectionResponse struct {
	Phase          string         `json:"phase"`
	TargetNumber   *float64       `json:"targetNumber,omitempty"`
	Order          []Player       `json:"order"`
	CurrentPicker  *Player        `json:"currentPicker,omitempty"`
	CurrentIndex   int            `json:"currentIndex"`
	TakenPositions map[int]string `json:"takenPositions"`
	AllSelected    bool           `json:"allSelected"`
	MaxPosition    int            `json:"maxPosition"`
}

type SelectPositionRequest struct {
	PlayerID int64 `json:"playerId"`
	Position int   `json:"position"`
}

type RosterResponse struct {
	Members []LeagueMember `json:"members"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type InitializeGameRequest struct {
	LeagueName   string     `json:"leagueName"`
	NumTeams     int        `json:"numTeams"`
	IsSimulation bool       `json:"isSimulation"`
	DevMode      bool       `json:"devMode"`
	Deadline     *time.Time `json:"deadline,omitempty"`
}

type UpdateLeagueNameRequest struct {
	LeagueName string `json:"leagueName"`
}

type SetDeadlineRequest struct {
	// Deadline clears the deadline when omitted.
	Deadline *time.Time `json:"deadline,omitempty"`
}

type DeleteSubmissionRequest struct {
	PlayerID int64  `json:"playerId"`
	Reason   string `json:"reason"`
}

type DeletedPlayersResponse struct {
	DeletedPlayers []DeletedPlayer `json:"deletedPlayers"`
}

type AddLatePlayerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// UploadRosterRequest carries either a CSV document with a name column or a
// plain list of names.
type UploadRosterRequest struct {
	CSV   string   `json:"csv,omitempty"`
	Names []string `json:"names,omitempty"`
}

type UploadRosterResponse struct {
	Added int `json:"added"`
}

type CreateBackupRequest struct {
	Reason string `json:"reason"`
}

type BackupRequest struct {
	ID string `json:"id"`
}

type BackupResponse struct {
	Backup Backup `json:"backup"`
}

type BackupsResponse struct {
	Backups []Backup `json:"backups"`
}

type BackupExportResponse struct {
	ID   string `json:"id"`
	YAML string `json:"yaml"`
}
