package main

import (
	"context"

	"newsdesk-backend/lib/restyutil"
	"newsdesk-backend/lib/scrapers/gazette"
	"newsdesk-backend/lib/serviceutil"
	"newsdesk-backend/lib/telemetry"
)

func initTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	err := telemetry.SetupFromEnv(ctx, "newsdeskd")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	telemetry.InstrumentPerfStats(ctx)

	if !verbose {
		return
	}
	gazette.SetRestyInstrumentOutput(
		restyutil.NewFilesystemOutput("resty_telemetry/gazette"),
	)
}
