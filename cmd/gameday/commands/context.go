package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/gameday/internal/config"
	"github.com/jakechorley/gameday/pkg/clients/sheetsclient"
	"github.com/jakechorley/gameday/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	OAuthCfg *config.OAuthClientConfig
	Database *postgres.DB
	Logger   *zap.Logger
	Ctx      context.Context

	sheetsClient *sheetsclient.Client
}

// SheetsClient returns the Google Sheets client, running the OAuth flow
// on first use. Commands that never touch a spreadsheet never trigger
// the flow.
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}

	if app.OAuthCfg == nil {
		oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env())
		if err != nil {
			return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
		}
		app.OAuthCfg = oauthCfg
	}

	app.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, app.OAuthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.sheetsClient = client
	return client, nil
}

// Env returns the environment the app was started with
func (app *AppContext) Env() string {
	return env
}
