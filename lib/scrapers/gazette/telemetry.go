package gazette

import (
	"newsdesk-backend/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/gazette")

var restyInstrumentOutput restyutil.InstrumentOutput

// must be called before any client is constructed
func SetRestyInstrumentOutput(output restyutil.InstrumentOutput) {
	restyInstrumentOutput = output
}
