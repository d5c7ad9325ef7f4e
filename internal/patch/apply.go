package patch

import (
	"context"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/patchbridge-backend/internal/observability"
	"github.com/yungbote/patchbridge-backend/internal/platform/ctxutil"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

const (
	OutcomeChanged     = "changed"
	OutcomeNoOp        = "noop"
	OutcomeClientError = "client_error"
	OutcomeServerError = "server_error"
)

const tracerName = "github.com/yungbote/patchbridge-backend/internal/patch"

// Applier holds the collaborators shared by every Apply call. It carries no
// per-request state and is safe for concurrent use.
type Applier struct {
	log     *logger.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
	options *jsonpatch.ApplyOptions
}

func NewApplier(log *logger.Logger, metrics *observability.Metrics) *Applier {
	if log == nil {
		log = logger.NewNop()
	}
	return &Applier{
		log:     log.With("component", "PatchApplier"),
		metrics: metrics,
		tracer:  otel.Tracer(tracerName),
		options: jsonpatch.NewApplyOptions(),
	}
}

// Apply applies doc to bean and returns the patched copy.
//
// A test-only document (including the empty one) returns bean unchanged with
// changed=false and is never evaluated. Otherwise operations run in order
// against a serialized copy; the first failing operation aborts the whole
// document and bean is left as it was.
func Apply[B any](ctx context.Context, a *Applier, doc *Document, bean B) (B, bool, error) {
	if a == nil {
		a = NewApplier(nil, nil)
	}
	start := time.Now()
	ctx, span := a.tracer.Start(ctx, "patch.apply", trace.WithAttributes(
		attribute.Int("patch.operations", doc.Len()),
	))
	defer span.End()

	patched, outcome, err := apply(a, doc, bean)

	span.SetAttributes(attribute.String("patch.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		fields := append([]interface{}{"outcome", outcome, "error", err}, ctxutil.LogFields(ctx)...)
		if outcome == OutcomeServerError {
			a.log.Error("patch application failed", fields...)
		} else {
			a.log.Debug("patch rejected", fields...)
		}
	}
	a.metrics.ObservePatch(outcome, doc.Kinds(), time.Since(start))
	if err != nil {
		return bean, false, err
	}
	return patched, outcome == OutcomeChanged, nil
}

func apply[B any](a *Applier, doc *Document, bean B) (B, string, error) {
	if doc.TestOnly() {
		return bean, OutcomeNoOp, nil
	}
	tree, err := toTree(bean)
	if err != nil {
		return bean, OutcomeServerError, serverError("patch.serialize", "update bean could not be serialized", err)
	}
	out, err := doc.ops.ApplyWithOptions(tree, a.options)
	if err != nil {
		return bean, OutcomeClientError, clientError("patch.apply", doc, err)
	}
	patched, err := fromTree[B](out)
	if err != nil {
		return bean, OutcomeServerError, serverError("patch.deserialize", "patched document does not fit the update bean", err)
	}
	return patched, OutcomeChanged, nil
}
