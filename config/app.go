package config

type App struct {
	Port        string `env:"APP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET" envDefault:"local_dev_secret"`
	RedisAddr   string `env:"REDIS_ADDR"`
	AMQPURL     string `env:"AMQP_URL"`
	Env         string `env:"APP_ENV" envDefault:"dev"`
}
