package commands

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/gameday/pkg/api"
)

// ServeCmd creates the serve command
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the attendance HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if env == "prod" || env == "production" {
				gin.SetMode(gin.ReleaseMode)
			}

			app.Logger.Info("Starting API server", zap.String("addr", app.Cfg.HTTPAddr))

			server := api.NewServer(app.Cfg, app.Database, app.Logger)
			return server.Run(app.Ctx)
		},
	}
}
