package server

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"draft-order/internal/api"
	"draft-order/internal/auth"
	"draft-order/internal/constants"
	"draft-order/internal/middleware"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type Route struct {
	Procedure string
	Handler   http.Handler
}

func unary[Req, Res any](procedure string, fn func(context.Context, *Req) (*Res, error), opts ...connect.HandlerOption) Route {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	h := connect.NewUnaryHandler(procedure, func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[Res], error) {
		res, err := fn(ctx, req.Msg)
		if err != nil {
			return nil, toConnectError(ctx, err)
		}
		return connect.NewResponse(res), nil
	}, opts...)
	return Route{Procedure: procedure, Handler: h}
}

// AdminInterceptor rejects admin calls without a valid bearer token. Login is
// the only procedure reachable without one.
func AdminInterceptor(issuer *auth.Issuer) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().Procedure == api.AdminLoginProcedure {
				return next(ctx, req)
			}

			token, ok := strings.CutPrefix(req.Header().Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("admin token required"))
			}
			if err := issuer.Verify(token); err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}
			return next(ctx, req)
		}
	}
}

func (s *GameServer) Routes() []Route {
	return []Route{
		unary(api.GetGameStateProcedure, s.GetGameState),
		unary(api.SubmitGuessProcedure, s.SubmitGuess),
		unary(api.ListPlayersProcedure, s.ListPlayers),
		unary(api.GetResultsProcedure, s.GetResults),
		unary(api.GetSelectionProcedure, s.GetSelection),
		unary(api.SelectPositionProcedure, s.SelectPosition),
		unary(api.ListRosterProcedure, s.ListRoster),
	}
}

func (s *AdminServer) Routes() []Route {
	guard := connect.WithInterceptors(AdminInterceptor(s.issuer))
	return []Route{
		unary(api.AdminLoginProcedure, s.Login, guard),
		unary(api.InitializeGameProcedure, s.InitializeGame, guard),
		unary(api.AdvancePhaseProcedure, s.AdvancePhase, guard),
		unary(api.ResetToSetupProcedure, s.ResetToSetup, guard),
		unary(api.FullResetProcedure, s.FullReset, guard),
		unary(api.SimulateProcedure, s.Simulate, guard),
		unary(api.QuickTestProcedure, s.QuickTest, guard),
		unary(api.ToggleDevModeProcedure, s.ToggleDevMode, guard),
		unary(api.ToggleSimulationProcedure, s.ToggleSimulation, guard),
		unary(api.UpdateLeagueNameProcedure, s.UpdateLeagueName, guard),
		unary(api.SetDeadlineProcedure, s.SetDeadline, guard),
		unary(api.ListSubmissionsProcedure, s.ListSubmissions, guard),
		unary(api.DeleteSubmissionProcedure, s.DeleteSubmission, guard),
		unary(api.ListDeletedProcedure, s.ListDeletedPlayers, guard),
		unary(api.AddLatePlayerProcedure, s.AddLatePlayer, guard),
		unary(api.UploadRosterProcedure, s.UploadRoster, guard),
		unary(api.ClearRosterProcedure, s.ClearRoster, guard),
		unary(api.CreateBackupProcedure, s.CreateBackup, guard),
		unary(api.ListBackupsProcedure, s.ListBackups, guard),
		unary(api.RestoreBackupProcedure, s.RestoreBackup, guard),
		unary(api.DeleteBackupProcedure, s.DeleteBackup, guard),
		unary(api.GetBackupExportProcedure, s.GetBackupExport, guard),
	}
}

// NewRouter mounts every procedure plus /healthz behind request logging,
// client IP resolution and CORS.
func NewRouter(gameServer *GameServer, adminServer *AdminServer, sqlDB *sql.DB, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.ClientIP)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/healthz", Healthz(sqlDB))

	for _, route := range append(gameServer.Routes(), adminServer.Routes()...) {
		r.Handle(route.Procedure, route.Handler)
	}
	return r
}

func Healthz(sqlDB *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), constants.DatabaseTimeout)
		defer cancel()

		if err := sqlDB.PingContext(ctx); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}
