package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"draft-order/internal/api"
	"draft-order/internal/auth"
	"draft-order/internal/backup"
	"draft-order/internal/config"
	"draft-order/internal/database"
	"draft-order/internal/db"
	"draft-order/internal/domain"
	"draft-order/internal/repository"
	"draft-order/internal/service"

	"connectrpc.com/connect"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const password = "letmein"

type harness struct {
	url     string
	backups *backup.Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	logger := zerolog.Nop()
	cfg := &config.Config{
		AdminPassword:   password,
		SecretKey:       "test-secret",
		DBPath:          filepath.Join(dir, "game.db"),
		BackupDir:       filepath.Join(dir, "backups"),
		BackupRetention: 50,
		AdminSessionTTL: time.Hour,
	}

	sqlDB, err := database.New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	clock := clockwork.NewFakeClockAt(time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC))
	store := repository.NewStore(sqlDB, db.New(sqlDB), logger)
	backups, err := backup.NewManager(cfg, store, clock, logger)
	require.NoError(t, err)

	gameSvc := service.NewGameService(store, backups, clock, logger)
	draftSvc := service.NewDraftService(store, backups, clock, logger)
	adminSvc := service.NewAdminService(store, backups, clock, logger)
	rosterSvc := service.NewRosterService(store, backups, clock, logger)
	issuer := auth.NewIssuer(cfg, clock, logger)

	router := NewRouter(
		NewGameServer(gameSvc, draftSvc, rosterSvc, clock),
		NewAdminServer(issuer, gameSvc, adminSvc, rosterSvc, backups, clock),
		sqlDB,
		logger,
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &harness{url: srv.URL, backups: backups}
}

type callError struct {
	status int
	Code   string `json:"code"`
}

func (e *callError) Error() string { return fmt.Sprintf("%d %s", e.status, e.Code) }

func (h *harness) call(t *testing.T, procedure, token string, headers map[string]string, in, out any) error {
	t.Helper()
	body, err := json.Marshal(in)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, h.url+procedure, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		ce := &callError{status: resp.StatusCode}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(ce))
		return ce
	}
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return nil
}

func (h *harness) login(t *testing.T) string {
	t.Helper()
	var resp api.LoginResponse
	require.NoError(t, h.call(t, api.AdminLoginProcedure, "", nil, api.LoginRequest{Password: password}, &resp))
	return resp.Token
}

func codeOfCall(err error) string {
	var ce *callError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		want connect.Code
	}{
		{domain.ErrInvalidGuess, connect.CodeInvalidArgument},
		{domain.ErrMissingColumn, connect.CodeInvalidArgument},
		{domain.ErrDuplicateName, connect.CodeAlreadyExists},
		{domain.ErrNotYourTurn, connect.CodeAlreadyExists},
		{domain.ErrSubmissionClosed, connect.CodeFailedPrecondition},
		{fmt.Errorf("wrapped: %w", domain.ErrWrongPhase), connect.CodeFailedPrecondition},
		{domain.ErrBackupNotFound, connect.CodeNotFound},
		{domain.ErrInvalidCredentials, connect.CodeUnauthenticated},
		{context.DeadlineExceeded, connect.CodeDeadlineExceeded},
		{errors.New("disk on fire"), connect.CodeInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, codeOf(tt.err), tt.err.Error())
	}
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	resp, err := http.Get(h.url + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRequiresToken(t *testing.T) {
	h := newHarness(t)

	err := h.call(t, api.AdvancePhaseProcedure, "", nil, api.Empty{}, nil)
	assert.Equal(t, "unauthenticated", codeOfCall(err))

	err = h.call(t, api.AdvancePhaseProcedure, "forged", nil, api.Empty{}, nil)
	assert.Equal(t, "unauthenticated", codeOfCall(err))

	err = h.call(t, api.AdminLoginProcedure, "", nil, api.LoginRequest{Password: "nope"}, nil)
	assert.Equal(t, "unauthenticated", codeOfCall(err))

	token := h.login(t)
	err = h.call(t, api.AdvancePhaseProcedure, token, nil, api.Empty{}, nil)
	assert.Equal(t, "failed_precondition", codeOfCall(err))
}

func TestFullRound(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)

	var gs api.GameState
	require.NoError(t, h.call(t, api.InitializeGameProcedure, token, nil,
		api.InitializeGameRequest{LeagueName: "Sunday League", NumTeams: 5}, &gs))
	assert.Equal(t, "submission", gs.Phase)
	assert.True(t, gs.SubmissionsOpen)

	for i, s := range []api.SubmitGuessRequest{
		{Name: "Alice", Guess: 300}, {Name: "Bob", Guess: 250}, {Name: "Charlie", Guess: 400},
		{Name: "Diana", Guess: 350}, {Name: "Eve", Guess: 200},
	} {
		headers := map[string]string{"X-Forwarded-For": fmt.Sprintf("203.0.113.%d, 10.0.0.1", i+1)}
		require.NoError(t, h.call(t, api.SubmitGuessProcedure, "", headers, s, nil))
	}

	err := h.call(t, api.SubmitGuessProcedure, "", nil, api.SubmitGuessRequest{Name: "alice", Guess: 1}, nil)
	assert.Equal(t, "already_exists", codeOfCall(err))
	err = h.call(t, api.SubmitGuessProcedure, "", nil, api.SubmitGuessRequest{Name: "Zed", Guess: 1001}, nil)
	assert.Equal(t, "invalid_argument", codeOfCall(err))

	var public api.PlayersResponse
	require.NoError(t, h.call(t, api.ListPlayersProcedure, "", nil, api.Empty{}, &public))
	require.Len(t, public.Players, 5)
	assert.Nil(t, public.Players[0].Guess)
	assert.Empty(t, public.Players[0].IPAddress)

	var private api.PlayersResponse
	require.NoError(t, h.call(t, api.ListSubmissionsProcedure, token, nil, api.Empty{}, &private))
	assert.Equal(t, "203.0.113.1", private.Players[0].IPAddress)
	assert.Equal(t, "alice@noemail.local", private.Players[0].Email)

	err = h.call(t, api.GetResultsProcedure, "", nil, api.Empty{}, nil)
	assert.Equal(t, "failed_precondition", codeOfCall(err))

	require.NoError(t, h.call(t, api.AdvancePhaseProcedure, token, nil, api.Empty{}, &gs))
	assert.Equal(t, "results", gs.Phase)
	assert.Equal(t, "Eve", gs.WinnerName)

	var results api.ResultsResponse
	require.NoError(t, h.call(t, api.GetResultsProcedure, "", nil, api.Empty{}, &results))
	assert.InDelta(t, 200, results.Target, 1e-9)
	assert.Equal(t, "Eve", results.Winner.Name)
	assert.Equal(t, "Bob", results.Ranked[1].Player.Name)

	snapshots, err := h.backups.List(context.Background())
	require.NoError(t, err)
	for range 3 {
		require.NoError(t, h.call(t, api.GetResultsProcedure, "", nil, api.Empty{}, nil))
	}
	again, err := h.backups.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snapshots, again)

	require.NoError(t, h.call(t, api.AdvancePhaseProcedure, token, nil, api.Empty{}, &gs))
	assert.Equal(t, "selecting", gs.Phase)

	var sel api.SelectionResponse
	require.NoError(t, h.call(t, api.GetSelectionProcedure, "", nil, api.Empty{}, &sel))
	require.NotNil(t, sel.CurrentPicker)
	assert.Equal(t, "Eve", sel.CurrentPicker.Name)

	ids := make([]int64, len(sel.Order))
	for i, p := range sel.Order {
		ids[i] = p.ID
	}

	err = h.call(t, api.SelectPositionProcedure, "", nil, api.SelectPositionRequest{PlayerID: ids[1], Position: 1}, nil)
	assert.Equal(t, "already_exists", codeOfCall(err))

	for i, id := range ids {
		require.NoError(t, h.call(t, api.SelectPositionProcedure, "", nil,
			api.SelectPositionRequest{PlayerID: id, Position: i + 1}, &sel))
	}
	assert.Equal(t, "completed", sel.Phase)
	assert.True(t, sel.AllSelected)
	assert.Equal(t, "Eve", sel.TakenPositions[1])

	backups, err := h.backups.List(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, backups)
}

func TestBackupProcedures(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)

	require.NoError(t, h.call(t, api.QuickTestProcedure, token, nil, api.Empty{}, nil))

	var created api.BackupResponse
	require.NoError(t, h.call(t, api.CreateBackupProcedure, token, nil, api.CreateBackupRequest{Reason: "checkpoint"}, &created))
	assert.Equal(t, "checkpoint", created.Backup.Reason)

	require.NoError(t, h.call(t, api.FullResetProcedure, token, nil, api.Empty{}, nil))

	var restored api.BackupResponse
	require.NoError(t, h.call(t, api.RestoreBackupProcedure, token, nil, api.BackupRequest{ID: created.Backup.ID}, &restored))
	assert.Equal(t, "pre_restore", restored.Backup.Reason)

	var gs api.GameState
	require.NoError(t, h.call(t, api.GetGameStateProcedure, "", nil, api.Empty{}, &gs))
	assert.Equal(t, "results", gs.Phase)
	assert.Equal(t, 5, gs.PlayerCount)
	assert.Equal(t, "Eve", gs.WinnerName)

	var export api.BackupExportResponse
	require.NoError(t, h.call(t, api.GetBackupExportProcedure, token, nil, api.BackupRequest{ID: created.Backup.ID}, &export))
	assert.Contains(t, export.YAML, "name: Eve")

	err := h.call(t, api.RestoreBackupProcedure, token, nil, api.BackupRequest{ID: "missing"}, nil)
	assert.Equal(t, "not_found", codeOfCall(err))

	require.NoError(t, h.call(t, api.DeleteBackupProcedure, token, nil, api.BackupRequest{ID: created.Backup.ID}, nil))
	require.NoError(t, h.call(t, api.DeleteBackupProcedure, token, nil, api.BackupRequest{ID: created.Backup.ID}, nil))
}

func TestRosterProcedures(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)

	var uploaded api.UploadRosterResponse
	require.NoError(t, h.call(t, api.UploadRosterProcedure, token, nil, api.UploadRosterRequest{CSV: "Name\nKim\nLee\n"}, &uploaded))
	assert.Equal(t, 2, uploaded.Added)

	var roster api.RosterResponse
	require.NoError(t, h.call(t, api.ListRosterProcedure, "", nil, api.Empty{}, &roster))
	assert.Len(t, roster.Members, 2)

	err := h.call(t, api.UploadRosterProcedure, token, nil, api.UploadRosterRequest{CSV: "team\nA\n"}, nil)
	assert.Equal(t, "invalid_argument", codeOfCall(err))

	require.NoError(t, h.call(t, api.UploadRosterProcedure, token, nil, api.UploadRosterRequest{Names: []string{"Solo"}}, &uploaded))
	assert.Equal(t, 1, uploaded.Added)
}

func TestClientAgainstServer(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := api.NewClient(h.url)

	_, err := c.Login(ctx, password)
	require.NoError(t, err)

	gs, err := c.InitializeGame(ctx, api.InitializeGameRequest{NumTeams: 4})
	require.NoError(t, err)
	assert.Equal(t, "Fantasy Football League", gs.LeagueName)

	resp, err := c.SubmitGuess(ctx, api.SubmitGuessRequest{Name: "Kim", Guess: 10}, "2001:db8::5")
	require.NoError(t, err)
	assert.Equal(t, "Kim", resp.Player.Name)

	_, err = c.SubmitGuess(ctx, api.SubmitGuessRequest{Name: "kim", Guess: 10}, "")
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "already_exists", apiErr.Code)
}
