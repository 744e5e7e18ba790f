package config

type App struct {
	Port            string `env:"APP_PORT" default:"8080"`
	DatabaseURL     string `env:"DATABASE_URL,required"`
	RedisAddr       string `env:"REDIS_ADDR" default:"localhost:6379"`
	SessionTTLHours int    `env:"SESSION_TTL_HOURS" default:"72"`
	Env             string `env:"APP_ENV" default:"dev"`
}
