package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Messages    Messages

	Backend  Backend  `envPrefix:"BACKEND_"`
	Database Database `envPrefix:"DATABASE_"`
	Redis    Redis    `envPrefix:"REDIS_"`
}

// Backend points at the shop's REST API: {APIBase}/api/{APIPath}/...
type Backend struct {
	APIBase string        `env:"API_BASE" envDefault:"https://vue3-course-api.hexschool.io/v2"`
	APIPath string        `env:"API_PATH,required"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // sqlite | mysql | postgres
	URL    string `env:"URL" envDefault:"storefront.db"`
}

// Redis is optional. An empty Addr disables the product catalog cache.
type Redis struct {
	Addr     string        `env:"ADDR"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	TTL      time.Duration `env:"TTL" envDefault:"5m"`
}

type Messages struct {
	TTL time.Duration `env:"MESSAGE_TTL" envDefault:"3s"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
