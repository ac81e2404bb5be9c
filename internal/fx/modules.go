package fx

import (
	"database/sql"

	"draft-order/internal/auth"
	"draft-order/internal/backup"
	"draft-order/internal/config"
	"draft-order/internal/database"
	"draft-order/internal/db"
	"draft-order/internal/logger"
	"draft-order/internal/repository"
	"draft-order/internal/server"
	"draft-order/internal/service"

	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

// ProvideNotifier makes the backup manager the post-commit hook of every service.
func ProvideNotifier(m *backup.Manager) service.Notifier {
	return m
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(ProvideClock),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// store
	fx.Provide(repository.NewStore),
	// backups
	fx.Provide(backup.NewManager),
	fx.Provide(ProvideNotifier),
	// svc
	fx.Provide(service.NewGameService),
	fx.Provide(service.NewDraftService),
	fx.Provide(service.NewAdminService),
	fx.Provide(service.NewRosterService),
	fx.Provide(auth.NewIssuer),
	// server
	fx.Provide(server.NewGameServer),
	fx.Provide(server.NewAdminServer),
)
