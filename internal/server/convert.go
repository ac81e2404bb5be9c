package server

import (
	"time"

	"draft-order/internal/api"
	"draft-order/internal/domain"
	"draft-order/internal/game"
)

func gameStateMsg(gs *domain.GameState, players []domain.Player, now time.Time) *api.GameState {
	msg := &api.GameState{
		Phase:              string(gs.Phase),
		WinnerID:           gs.WinnerID,
		TargetNumber:       gs.TargetNumber,
		AverageGuess:       gs.AverageGuess,
		NumTeams:           gs.NumTeams,
		SubmissionDeadline: gs.SubmissionDeadline,
		DevMode:            gs.DevMode,
		LeagueName:         gs.LeagueName,
		IsSimulation:       gs.IsSimulation,
		IsInitialized:      gs.IsInitialized,
		SubmissionsOpen:    game.CanSubmit(*gs, now) == nil,
		PlayerCount:        len(players),
	}
	if gs.WinnerID != nil {
		for _, p := range players {
			if p.ID == *gs.WinnerID {
				msg.WinnerName = p.Name
				break
			}
		}
	}
	return msg
}

// playerMsg renders p for anyone. Contact details stay private.
func playerMsg(p domain.Player) api.Player {
	return api.Player{
		ID:            p.ID,
		Name:          p.Name,
		Guess:         p.Guess,
		Timestamp:     p.Timestamp,
		DraftPosition: p.DraftPosition,
	}
}

func adminPlayerMsg(p domain.Player) api.Player {
	msg := playerMsg(p)
	msg.Email = p.Email
	msg.IPAddress = p.IPAddress
	return msg
}

func playersMsg(players []domain.Player, render func(domain.Player) api.Player) []api.Player {
	out := make([]api.Player, len(players))
	for i, p := range players {
		out[i] = render(p)
	}
	return out
}

func deletedPlayerMsg(d domain.DeletedPlayer) api.DeletedPlayer {
	return api.DeletedPlayer{
		ID:                d.ID,
		OriginalID:        d.OriginalID,
		Name:              d.Name,
		Email:             d.Email,
		Guess:             d.Guess,
		OriginalTimestamp: d.OriginalTimestamp,
		DeletedTimestamp:  d.DeletedTimestamp,
		DeletedReason:     d.DeletedReason,
		IPAddress:         d.IPAddress,
	}
}

func backupMsg(b domain.Backup) api.Backup {
	return api.Backup{
		ID:        b.ID,
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
		SizeBytes: b.SizeBytes,
	}
}
