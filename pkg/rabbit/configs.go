package rabbit

import (
	"net"
	"net/url"
	"strconv"
)

// Config holds the broker connection and the exchange run events are published to.
type Config struct {
	Connection Connection
	Channel    Channel
}

// Connection holds the AMQP server address and credentials.
type Connection struct {
	Host         string `yaml:"host" envconfig:"RABBITMQ_HOST" default:"localhost"`
	Port         uint   `yaml:"port" envconfig:"RABBITMQ_PORT" default:"5672"`
	User         string `yaml:"user" envconfig:"RABBITMQ_USER" default:"guest"`
	Password     string `yaml:"password" envconfig:"RABBITMQ_PASSWORD" default:"guest"`
	IsSSLEnabled bool   `yaml:"ssl_enabled" envconfig:"RABBITMQ_SSL_ENABLED"`
}

// Channel describes where events go.
type Channel struct {
	ExchangeName string `yaml:"exchange_name" envconfig:"RABBITMQ_EXCHANGE_NAME" default:"open-mds.runs"`
	ExchangeType string `yaml:"exchange_type" envconfig:"RABBITMQ_EXCHANGE_TYPE" default:"topic"`

	// RoutingKeyPrefix is followed by the perturbation name, e.g. "run.completed.deletion".
	RoutingKeyPrefix string `yaml:"routing_key_prefix" envconfig:"RABBITMQ_ROUTING_KEY_PREFIX" default:"run.completed"`
}

// URL renders the AMQP connection URL.
func (c Connection) URL() string {
	scheme := "amqp"
	if c.IsSSLEnabled {
		scheme = "amqps"
	}
	u := url.URL{
		Scheme: scheme,
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.FormatUint(uint64(c.Port), 10)),
	}
	return u.String()
}
