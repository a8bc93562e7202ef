package config

import (
	"time"
)

type API struct {
	Listen       string        `env:"API_HTTP_LISTEN" envDefault:":3000"`
	ReadTimeout  time.Duration `env:"API_HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"API_HTTP_WRITE_TIMEOUT" envDefault:"30s"`
}
