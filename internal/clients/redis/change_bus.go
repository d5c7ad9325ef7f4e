package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

const DefaultChannel = "patch-events"

// ChangeMessage is published once per persisted patch.
type ChangeMessage struct {
	Resource string          `json:"resource"`
	ID       uint            `json:"id"`
	Patch    json.RawMessage `json:"patch"`
	TraceID  string          `json:"trace_id,omitempty"`
}

type ChangeBus interface {
	Publish(ctx context.Context, msg ChangeMessage) error
	StartForwarder(ctx context.Context, onMsg func(m ChangeMessage)) error
	Close() error
}

type Config struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

type changeBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

// NewChangeBus connects to cfg.Addr and fails fast when the server does not answer a ping.
func NewChangeBus(log *logger.Logger, cfg Config) (ChangeBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newChangeBus(log, rdb, cfg.Channel), nil
}

func newChangeBus(log *logger.Logger, rdb *goredis.Client, channel string) *changeBus {
	ch := strings.TrimSpace(channel)
	if ch == "" {
		ch = DefaultChannel
	}
	return &changeBus{
		log:     log.With("service", "RedisChangeBus", "channel", ch),
		rdb:     rdb,
		channel: ch,
	}
}

func (b *changeBus) Publish(ctx context.Context, msg ChangeMessage) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis change bus not initialized")
	}
	raw, err := encodeMessage(msg)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *changeBus) StartForwarder(ctx context.Context, onMsg func(m ChangeMessage)) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis change bus not initialized")
	}
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				msg, err := decodeMessage([]byte(m.Payload))
				if err != nil {
					b.log.Warn("bad redis change payload", "error", err)
					continue
				}
				onMsg(msg)
			}
		}
	}()
	return nil
}

func (b *changeBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}

func encodeMessage(msg ChangeMessage) ([]byte, error) {
	if len(msg.Patch) == 0 {
		msg.Patch = json.RawMessage("[]")
	}
	return json.Marshal(msg)
}

func decodeMessage(raw []byte) (ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return ChangeMessage{}, err
	}
	if strings.TrimSpace(msg.Resource) == "" {
		return ChangeMessage{}, fmt.Errorf("change message without resource")
	}
	return msg, nil
}
