package config

import (
	"time"
)

type Updates struct {
	// LateThreshold is the grace window after a due date during which a late update is still accepted
	LateThreshold       time.Duration `env:"UPDATES_LATE_THRESHOLD" envDefault:"168h"`
	NextPolicy          string        `env:"UPDATES_NEXT_POLICY" envDefault:"strictly_future"`
	MissedCheckInterval time.Duration `env:"UPDATES_MISSED_CHECK_INTERVAL" envDefault:"1h"`
	TopicCacheTTL       time.Duration `env:"SURVEY_TOPIC_CACHE_TTL" envDefault:"10m"`
}
