package server

import (
	"context"
	"strings"

	"draft-order/internal/api"
	"draft-order/internal/auth"
	"draft-order/internal/backup"
	"draft-order/internal/domain"
	"draft-order/internal/roster"
	"draft-order/internal/service"

	"github.com/jonboulle/clockwork"
)

// AdminServer serves the procedures behind the admin token.
type AdminServer struct {
	issuer    *auth.Issuer
	gameSvc   *service.GameService
	adminSvc  *service.AdminService
	rosterSvc *service.RosterService
	backups   *backup.Manager
	clock     clockwork.Clock
}

func NewAdminServer(
	issuer *auth.Issuer,
	gameSvc *service.GameService,
	adminSvc *service.AdminService,
	rosterSvc *service.RosterService,
	backups *backup.Manager,
	clock clockwork.Clock,
) *AdminServer {
	return &AdminServer{
		issuer:    issuer,
		gameSvc:   gameSvc,
		adminSvc:  adminSvc,
		rosterSvc: rosterSvc,
		backups:   backups,
		clock:     clock,
	}
}

func (s *AdminServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	token, expiresAt, err := s.issuer.Login(req.Password)
	if err != nil {
		return nil, err
	}
	return &api.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AdminServer) InitializeGame(ctx context.Context, req *api.InitializeGameRequest) (*api.GameState, error) {
	return s.stateMsg(ctx)(s.adminSvc.InitializeGame(ctx, service.GameConfig{
		LeagueName:   req.LeagueName,
		NumTeams:     req.NumTeams,
		IsSimulation: req.IsSimulation,
		DevMode:      req.DevMode,
		Deadline:     req.Deadline,
	}))
}

func (s *AdminServer) AdvancePhase(ctx context.Context, _ *api.Empty) (*api.GameState, error) {
	return s.stateMsg(ctx)(s.gameSvc.AdvancePhase(ctx))
}

func (s *AdminServer) ResetToSetup(ctx context.Context, _ *api.Empty) (*api.GameState, error) {
	return s.stateMsg(ctx)(s.adminSvc.ResetToSetup(ctx))
}

func (s *AdminServer) FullReset(ctx context.Context, _ *api.Empty) (*api.GameState, error) {
	return s.stateMsg(ctx)(s.adminSvc.FullReset(ctx))
}

func (s *AdminServer) Simulate(ctx context.Context, _ *api.Empty) (*api.GameState, error) {
	return s.stateMsg(ctx)(s.adminSvc.Simulate(ctx))
}

func (s *AdminServer) QuickTest(ctx context.Context, _ *api.Empty) (*api.GameState, error) {
	return s.stateMsg(ctx)(s.adminSvc.QuickTest(ctx))
}

func (s *AdminServer) ToggleDevMode(ctx context.Context, _ *api.Empty) (*api.GameState, error) {
	return s.stateMsg(ctx)(s.adminSvc.ToggleDevMode(ctx))
}

func (s *AdminServer) ToggleSimulation(ctx context.Context, _ *api.Empty) (*api.GameState, error) {
	return s.stateMsg(ctx)(s.adminSvc.ToggleSimulation(ctx))
}

func (s *AdminServer) UpdateLeagueName(ctx context.Context, req *api.UpdateLeagueNameRequest) (*api.GameState, error) {
	return s.stateMsg(ctx)(s.adminSvc.UpdateLeagueName(ctx, req.LeagueName))
}

func (s *AdminServer) SetDeadline(ctx context.Context, req *api.SetDeadlineRequest) (*api.GameState, error) {
	return s.stateMsg(ctx)(s.adminSvc.SetDeadline(ctx, req.Deadline))
}

func (s *AdminServer) ListSubmissions(ctx context.Context, _ *api.Empty) (*api.PlayersResponse, error) {
	players, err := s.gameSvc.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	return &api.PlayersResponse{Players: playersMsg(players, adminPlayerMsg)}, nil
}

func (s *AdminServer) DeleteSubmission(ctx context.Context, req *api.DeleteSubmissionRequest) (*api.PlayerResponse, error) {
	player, err := s.adminSvc.DeleteSubmission(ctx, req.PlayerID, req.Reason)
	if err != nil {
		return nil, err
	}
	return &api.PlayerResponse{Player: adminPlayerMsg(*player)}, nil
}

func (s *AdminServer) ListDeletedPlayers(ctx context.Context, _ *api.Empty) (*api.DeletedPlayersResponse, error) {
	deleted, err := s.adminSvc.ListDeletedPlayers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]api.DeletedPlayer, len(deleted))
	for i, d := range deleted {
		out[i] = deletedPlayerMsg(d)
	}
	return &api.DeletedPlayersResponse{DeletedPlayers: out}, nil
}

func (s *AdminServer) AddLatePlayer(ctx context.Context, req *api.AddLatePlayerRequest) (*api.PlayerResponse, error) {
	player, err := s.adminSvc.AddLatePlayer(ctx, req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	return &api.PlayerResponse{Player: adminPlayerMsg(*player)}, nil
}

func (s *AdminServer) UploadRoster(ctx context.Context, req *api.UploadRosterRequest) (*api.UploadRosterResponse, error) {
	var (
		added int
		err   error
	)
	if req.CSV != "" {
		added, err = s.rosterSvc.UploadCSV(ctx, strings.NewReader(req.CSV))
	} else {
		rows := make([]roster.Row, len(req.Names))
		for i, name := range req.Names {
			rows[i] = roster.Row{Name: name}
		}
		added, err = s.rosterSvc.Upload(ctx, rows)
	}
	if err != nil {
		return nil, err
	}
	return &api.UploadRosterResponse{Added: added}, nil
}

func (s *AdminServer) ClearRoster(ctx context.Context, _ *api.Empty) (*api.Empty, error) {
	if err := s.rosterSvc.Clear(ctx); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (s *AdminServer) CreateBackup(ctx context.Context, req *api.CreateBackupRequest) (*api.BackupResponse, error) {
	b, err := s.backups.Create(ctx, req.Reason)
	if err != nil {
		return nil, err
	}
	return &api.BackupResponse{Backup: backupMsg(*b)}, nil
}

func (s *AdminServer) ListBackups(ctx context.Context, _ *api.Empty) (*api.BackupsResponse, error) {
	backups, err := s.backups.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]api.Backup, len(backups))
	for i, b := range backups {
		out[i] = backupMsg(b)
	}
	return &api.BackupsResponse{Backups: out}, nil
}

// RestoreBackup returns the pre_restore snapshot taken before the data was replaced.
func (s *AdminServer) RestoreBackup(ctx context.Context, req *api.BackupRequest) (*api.BackupResponse, error) {
	safety, err := s.backups.Restore(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &api.BackupResponse{Backup: backupMsg(*safety)}, nil
}

func (s *AdminServer) DeleteBackup(ctx context.Context, req *api.BackupRequest) (*api.Empty, error) {
	if err := s.backups.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (s *AdminServer) GetBackupExport(ctx context.Context, req *api.BackupRequest) (*api.BackupExportResponse, error) {
	data, err := s.backups.Export(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &api.BackupExportResponse{ID: req.ID, YAML: string(data)}, nil
}

// stateMsg renders the game state returned by an admin operation.
func (s *AdminServer) stateMsg(ctx context.Context) func(*domain.GameState, error) (*api.GameState, error) {
	return func(gs *domain.GameState, err error) (*api.GameState, error) {
		if err != nil {
			return nil, err
		}
		players, err := s.gameSvc.ListPlayers(ctx)
		if err != nil {
			return nil, err
		}
		return gameStateMsg(gs, players, s.clock.Now()), nil
	}
}
