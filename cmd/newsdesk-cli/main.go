package main

import (
	"context"

	"newsdesk-backend/cmd/newsdesk-cli/commands"
	"newsdesk-backend/lib/telemetry"
)

func main() {
	ctx := context.Background()
	telemetry.InitSlog(true)
	telemetry.SetupFromEnv(ctx, "newsdesk-cli")
	commands.ExecuteContext(ctx)
}
