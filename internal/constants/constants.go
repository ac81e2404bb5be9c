package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	BackupTimeout   = 30 * time.Second
	ClientTimeout   = 10 * time.Second
)

// A single long-lived connection: sqlite allows one writer and the per-connection
// pragmas must survive for the life of the process.
const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 0
	DBMaxIdleTime     = 0
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	MinGuess            = 0
	MaxGuess            = 1000
	MinTeams            = 2
	MaxTeams            = 20
	DefaultNumTeams     = 12
	MaxLeagueNameLength = 100
	DefaultLeagueName   = "Fantasy Football League"
	PlaceholderDomain   = "noemail.local"
	DefaultDeleteReason = "No reason provided"
)

const (
	SimulatedGuessMin = 150
	SimulatedGuessMax = 500
)

const (
	DefaultBackupRetention = 20
	SeedConcurrency        = 4
)
