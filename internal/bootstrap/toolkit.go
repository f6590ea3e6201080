package bootstrap

import (
	"context"
	"log/slog"

	"github.com/go-authgate/tokenguard/internal/config"
	"github.com/go-authgate/tokenguard/internal/core"
	"github.com/go-authgate/tokenguard/internal/services"
	"github.com/go-authgate/tokenguard/internal/validation"

	"github.com/jonboulle/clockwork"
)

// Toolkit is the application without its HTTP layer, for command line tools
// that validate or issue tokens against the configured stores.
type Toolkit struct {
	Validator  *validation.Validator
	References core.ReferenceTokenStore
	Clients    *services.ClientService
	Clock      clockwork.Clock

	app *Application
}

// NewToolkit runs the infrastructure and business phases of Run. Callers
// must Close the toolkit.
func NewToolkit(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Toolkit, error) {
	app := &Application{
		Config: cfg,
		Logger: logger,
		Clock:  clockwork.NewRealClock(),
	}

	if err := validateAllConfiguration(cfg); err != nil {
		return nil, err
	}
	if err := app.initializeInfrastructure(ctx); err != nil {
		app.closeInfrastructure()
		return nil, err
	}
	if err := app.initializeBusinessLayer(); err != nil {
		app.closeInfrastructure()
		return nil, err
	}

	return &Toolkit{
		Validator:  app.Validator,
		References: app.References.store,
		Clients:    app.ClientService,
		Clock:      app.Clock,
		app:        app,
	}, nil
}

// Close releases the database and cache connections.
func (t *Toolkit) Close() {
	t.app.closeInfrastructure()
}
