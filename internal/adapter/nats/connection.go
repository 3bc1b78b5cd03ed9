package nats

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/vietlinker/listing-service/internal/app/config"
)

const defaultConnectTimeout = 5 * time.Second

func NewConnection(cfg config.NATSConfig) (*nats.Conn, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Timeout(defaultConnectTimeout),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.URL, err)
	}
	return conn, nil
}
