package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrState           = errors.New("invalid game state")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
)

var (
	ErrInvalidGuess      = fmt.Errorf("%w: guess must be between 0 and 1000", ErrValidation)
	ErrInvalidTeamCount  = fmt.Errorf("%w: number of teams must be between 2 and 20", ErrValidation)
	ErrInvalidLeagueName = fmt.Errorf("%w: league name must be 1 to 100 characters", ErrValidation)
	ErrInvalidName       = fmt.Errorf("%w: name is required", ErrValidation)
	ErrInvalidPosition   = fmt.Errorf("%w: invalid draft position", ErrValidation)
	ErrMissingColumn     = fmt.Errorf("%w: roster file must contain a name column", ErrValidation)
)

var (
	ErrDuplicateName  = fmt.Errorf("%w: name has already submitted a guess", ErrConflict)
	ErrDuplicateEmail = fmt.Errorf("%w: email has already submitted a guess", ErrConflict)
	ErrPositionTaken  = fmt.Errorf("%w: draft position already taken", ErrConflict)
	ErrAlreadyPicked  = fmt.Errorf("%w: player already selected a draft position", ErrConflict)
	ErrNotYourTurn    = fmt.Errorf("%w: not your turn to pick", ErrConflict)
)

var (
	ErrSubmissionClosed   = fmt.Errorf("%w: submission period has ended", ErrState)
	ErrWrongPhase         = fmt.Errorf("%w: operation not allowed in current phase", ErrState)
	ErrNotInitialized     = fmt.Errorf("%w: game has not been initialized", ErrState)
	ErrAlreadyInitialized = fmt.Errorf("%w: game already initialized, reset to setup first", ErrState)
	ErrNoSubmissions      = fmt.Errorf("%w: no guesses have been submitted", ErrState)
)

var (
	ErrPlayerNotFound = fmt.Errorf("%w: player", ErrNotFound)
	ErrBackupNotFound = fmt.Errorf("%w: backup", ErrNotFound)
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid password", ErrUnauthenticated)
