// Command api-server runs the storefront HTTP API.
package main

import (
	"context"

	sdkapp "github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	"github.com/sirajstore/commerce-api/internal/app"
)

func main() {
	sdkapp.Run(func(ctx context.Context, lg *zap.Logger, m *sdkapp.Telemetry) error {
		cfg, err := app.LoadConfig()
		if err != nil {
			return err
		}
		return app.Run(ctx, lg, m, cfg)
	})
}
