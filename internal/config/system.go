package config

type Prometheus struct {
	Listen string `env:"PROMETHEUS_LISTEN" envDefault:":2112"`
}

type Health struct {
	Listen string `env:"HEALTH_LISTEN" envDefault:":8080"`
}
