package app

import (
	"fmt"
	"strings"

	"github.com/yungbote/patchbridge-backend/internal/clients/redis"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

type Clients struct {
	ChangeBus redis.ChangeBus
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	var bus redis.ChangeBus
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		b, err := redis.NewChangeBus(log, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			Channel:  cfg.RedisChannel,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis change bus: %w", err)
		}
		bus = b
	} else {
		log.Info("REDIS_ADDR not set, change notifications disabled")
	}

	return Clients{ChangeBus: bus}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.ChangeBus != nil {
		_ = c.ChangeBus.Close()
	}
}
