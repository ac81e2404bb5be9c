package server

import (
	"context"

	"draft-order/internal/api"
	"draft-order/internal/game"
	"draft-order/internal/middleware"
	"draft-order/internal/scoring"
	"draft-order/internal/service"

	"github.com/jonboulle/clockwork"
)

// GameServer serves the player-facing procedures.
type GameServer struct {
	gameSvc   *service.GameService
	draftSvc  *service.DraftService
	rosterSvc *service.RosterService
	clock     clockwork.Clock
}

func NewGameServer(gameSvc *service.GameService, draftSvc *service.DraftService, rosterSvc *service.RosterService, clock clockwork.Clock) *GameServer {
	return &GameServer{gameSvc: gameSvc, draftSvc: draftSvc, rosterSvc: rosterSvc, clock: clock}
}

func (s *GameServer) GetGameState(ctx context.Context, _ *api.Empty) (*api.GameState, error) {
	gs, err := s.gameSvc.GetGameState(ctx)
	if err != nil {
		return nil, err
	}
	players, err := s.gameSvc.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	return gameStateMsg(gs, players, s.clock.Now()), nil
}

func (s *GameServer) SubmitGuess(ctx context.Context, req *api.SubmitGuessRequest) (*api.PlayerResponse, error) {
	player, err := s.gameSvc.SubmitGuess(ctx, service.Submission{
		Name:     req.Name,
		Email:    req.Email,
		Guess:    req.Guess,
		ClientIP: middleware.GetClientIP(ctx),
	})
	if err != nil {
		return nil, err
	}
	return &api.PlayerResponse{Player: playerMsg(*player)}, nil
}

// ListPlayers hides guesses until the round has been scored.
func (s *GameServer) ListPlayers(ctx context.Context, _ *api.Empty) (*api.PlayersResponse, error) {
	gs, err := s.gameSvc.GetGameState(ctx)
	if err != nil {
		return nil, err
	}
	players, err := s.gameSvc.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	msgs := playersMsg(players, playerMsg)
	if game.CanViewResults(gs.Phase) != nil {
		for i := range msgs {
			msgs[i].Guess = nil
		}
	}
	return &api.PlayersResponse{Players: msgs}, nil
}

func (s *GameServer) GetResults(ctx context.Context, _ *api.Empty) (*api.ResultsResponse, error) {
	gs, err := s.gameSvc.GetGameState(ctx)
	if err != nil {
		return nil, err
	}
	if err := game.CanViewResults(gs.Phase); err != nil {
		return nil, err
	}

	res, err := s.gameSvc.ComputeResults(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]api.RankedPlayer, len(res.Ranked))
	for i, p := range res.Ranked {
		ranked[i] = api.RankedPlayer{Player: playerMsg(p), Distance: scoring.Distance(p, res.Target)}
	}
	return &api.ResultsResponse{
		Average: res.Average,
		Target:  res.Target,
		Winner:  playerMsg(res.Winner),
		Ranked:  ranked,
	}, nil
}

func (s *GameServer) GetSelection(ctx context.Context, _ *api.Empty) (*api.SelectionResponse, error) {
	view, err := s.draftSvc.SelectionState(ctx)
	if err != nil {
		return nil, err
	}
	return selectionMsg(view), nil
}

func (s *GameServer) SelectPosition(ctx context.Context, req *api.SelectPositionRequest) (*api.SelectionResponse, error) {
	view, err := s.draftSvc.SelectPosition(ctx, req.PlayerID, req.Position)
	if err != nil {
		return nil, err
	}
	return selectionMsg(view), nil
}

func (s *GameServer) ListRoster(ctx context.Context, _ *api.Empty) (*api.RosterResponse, error) {
	members, err := s.rosterSvc.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]api.LeagueMember, len(members))
	for i, m := range members {
		out[i] = api.LeagueMember{ID: m.ID, Name: m.Name}
	}
	return &api.RosterResponse{Members: out}, nil
}

func selectionMsg(view *service.SelectionView) *api.SelectionResponse {
	board := view.Board
	msg := &api.SelectionResponse{
		Phase:          string(view.Game.Phase),
		TargetNumber:   view.Game.TargetNumber,
		Order:          playersMsg(board.Order, playerMsg),
		CurrentIndex:   board.CurrentIndex,
		TakenPositions: board.Taken,
		AllSelected:    board.AllSelected,
		MaxPosition:    board.MaxPosition,
	}
	if board.CurrentPicker != nil {
		picker := playerMsg(*board.CurrentPicker)
		msg.CurrentPicker = &picker
	}
	return msg
}
