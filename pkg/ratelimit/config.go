package ratelimit

import "time"

// Config holds the request throttling policies. Login and registration get
// tight limits since they are the main abuse targets; the API policy covers
// everything else.
type Config struct {
	LoginLimit     int           `env:"RATELIMIT_LOGIN_LIMIT" envDefault:"5"`
	LoginWindow    time.Duration `env:"RATELIMIT_LOGIN_WINDOW" envDefault:"15m"`
	RegisterLimit  int           `env:"RATELIMIT_REGISTER_LIMIT" envDefault:"3"`
	RegisterWindow time.Duration `env:"RATELIMIT_REGISTER_WINDOW" envDefault:"1h"`
	APILimit       int           `env:"RATELIMIT_API_LIMIT" envDefault:"100"`
	APIWindow      time.Duration `env:"RATELIMIT_API_WINDOW" envDefault:"15m"`
}
