package commands

import (
	"time"

	"github.com/skyfly/aircraftdb/config"
	"github.com/skyfly/aircraftdb/db"
	"github.com/skyfly/aircraftdb/errors"
	"github.com/skyfly/aircraftdb/logger"
)

// openManager loads configuration and builds the connection manager for one
// command invocation. The database itself opens lazily on first use.
func openManager() (*config.Config, *db.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load configuration")
	}
	mgr := db.NewManager(
		cfg.GetDatabasePath(),
		cfg.GetBusyTimeoutMS(),
		time.Duration(cfg.GetWriteLockTimeoutSeconds())*time.Second,
		logger.Logger,
	)
	return cfg, mgr, nil
}
