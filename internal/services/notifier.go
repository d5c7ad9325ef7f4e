package services

import (
	"context"
	"encoding/json"

	"github.com/yungbote/patchbridge-backend/internal/clients/redis"
	"github.com/yungbote/patchbridge-backend/internal/observability"
	"github.com/yungbote/patchbridge-backend/internal/platform/ctxutil"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

// ChangeNotifier is told about every persisted patch. Implementations must
// not block the request for long and never fail it.
type ChangeNotifier interface {
	PatchApplied(ctx context.Context, resource string, id uint, rawPatch []byte)
}

type nopNotifier struct{}

func (nopNotifier) PatchApplied(context.Context, string, uint, []byte) {}

func NewNopNotifier() ChangeNotifier { return nopNotifier{} }

// ChangePublisher is the slice of redis.ChangeBus the notifier needs.
type ChangePublisher interface {
	Publish(ctx context.Context, msg redis.ChangeMessage) error
}

type busNotifier struct {
	log     *logger.Logger
	pub     ChangePublisher
	metrics *observability.Metrics
}

func NewBusNotifier(baseLog *logger.Logger, pub ChangePublisher, metrics *observability.Metrics) ChangeNotifier {
	if pub == nil {
		return nopNotifier{}
	}
	return &busNotifier{
		log:     baseLog.With("service", "ChangeNotifier"),
		pub:     pub,
		metrics: metrics,
	}
}

func (n *busNotifier) PatchApplied(ctx context.Context, resource string, id uint, rawPatch []byte) {
	msg := redis.ChangeMessage{
		Resource: resource,
		ID:       id,
		Patch:    json.RawMessage(rawPatch),
	}
	if td := ctxutil.GetTraceData(ctx); td != nil {
		msg.TraceID = td.TraceID
	}
	if err := n.pub.Publish(context.WithoutCancel(ctx), msg); err != nil {
		n.metrics.IncNotification("error")
		n.log.Warn("Publishing change failed", append(ctxutil.LogFields(ctx), "resource", resource, "id", id, "error", err)...)
		return
	}
	n.metrics.IncNotification("published")
}
