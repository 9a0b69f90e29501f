package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-golem/internal/messaging"
)

type NatsConfig struct {
	Host string `json:"host" env:"GOLEM_NATS_HOST"`
	// Port 0 picks a free port.
	Port         int    `json:"port" env:"GOLEM_NATS_PORT"`
	StartTimeout string `json:"start_timeout"`
}

func (c *NatsConfig) validate() error {
	el := errors.NewErrorList()

	_, err := optionalDuration("nats.start_timeout", c.StartTimeout)
	el.Add(err)
	if c.Port < -1 || c.Port > 65535 {
		el.Add(fmt.Errorf("nats.port out of range: %d", c.Port))
	}

	return el.Err()
}

func (c *NatsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	var opts []messaging.NatsServerOpt
	if d, _ := optionalDuration("nats.start_timeout", c.StartTimeout); d > 0 {
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if c.Host != "" {
		opts = append(opts, messaging.WithHost(c.Host))
	}
	port := c.Port
	if port == 0 {
		port = -1
	}
	opts = append(opts, messaging.WithPort(port))

	return messaging.NewNatsServer(opts...)
}
