package main

// Run database migrations:
//   go run ./cmd/migrate [up|down|status|version]

import (
	"context"
	"os"

	"cvmaker-backend/internal/shared/config"
	"cvmaker-backend/internal/shared/storage/db"
	"cvmaker-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if err := telemetry.Init(cfg.LogLevel); err != nil {
		telemetry.Error("telemetry.init_failed", map[string]any{"err": err})
	}
	defer telemetry.Sync()
	ctx := context.Background()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultCLIOptions()))
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"err": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.Migrate(ctx, sqlDB, command); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"command": command, "err": err})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{"command": command})
}
