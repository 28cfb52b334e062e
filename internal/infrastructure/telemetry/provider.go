// Package telemetry configura las trazas de OpenTelemetry. Sin colector externo, los spans
// terminados se escriben en el log estructurado.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Setup registra un TracerProvider global que envía los spans a log.
// Con enabled=false no registra nada y devuelve un shutdown vacío.
// El shutdown devuelto debe diferirse en main.
func Setup(serviceName string, enabled bool, log *logger.Logger) func(context.Context) error {
	if !enabled {
		return func(context.Context) error { return nil }
	}
	tp := NewProvider(serviceName, log)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}

// NewProvider construye el TracerProvider con muestreo total y el procesador de log.
func NewProvider(serviceName string, log *logger.Logger) *sdktrace.TracerProvider {
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))
	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(LogSpanProcessor{log: log}),
	)
}

// LogSpanProcessor escribe cada span terminado: debug si terminó bien, warn si con error.
type LogSpanProcessor struct {
	log *logger.Logger
}

// NewLogSpanProcessor construye el procesador.
func NewLogSpanProcessor(log *logger.Logger) LogSpanProcessor {
	return LogSpanProcessor{log: log}
}

func (LogSpanProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p LogSpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	if s == nil || p.log == nil {
		return
	}
	ev := p.log.Debug()
	if s.Status().Code == codes.Error {
		ev = p.log.Warn().Str("error", s.Status().Description)
	}
	for _, kv := range s.Attributes() {
		ev = ev.Str(string(kv.Key), kv.Value.Emit())
	}
	ev.Str("span", s.Name()).
		Str("trace_id", s.SpanContext().TraceID().String()).
		Dur("duration", s.EndTime().Sub(s.StartTime())).
		Msg("span")
}

func (LogSpanProcessor) Shutdown(context.Context) error { return nil }

func (LogSpanProcessor) ForceFlush(context.Context) error { return nil }
