package config

import "github.com/kelseyhightower/envconfig"

type Server struct {
	Host        string `envconfig:"SERVER_HOST" default:"localhost"`
	Port        string `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout int    `envconfig:"SERVER_TIMEOUT" default:"10"`
}

type Db struct {
	Dialect        string `envconfig:"DB_DIALECT" default:"sqlite"`
	Source         string `envconfig:"DB_NAME" default:"weather_requests.db"`
	MigrationsPath string `envconfig:"DB_MIGRATIONS_DIR" default:"./migrations"`
}

type Redis struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Db       int    `envconfig:"REDIS_DB" default:"0"`
	LiveTime int    `envconfig:"REDIS_LIVE_TIME" default:"10"`
}

type Email struct {
	APIKey   string `envconfig:"RESEND_API_KEY" required:"true"`
	APIURL   string `envconfig:"RESEND_API_URL" default:"https://api.resend.com/emails"`
	From     string `envconfig:"EMAIL_FROM" default:"Weather Automation <onboarding@resend.dev>"`
	Timezone string `envconfig:"EMAIL_TIMEZONE" default:"Asia/Kolkata"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"15"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type App struct {
	Name    string `envconfig:"APP_NAME" default:"Weather Automation System"`
	Version string `envconfig:"APP_VERSION" default:"1.0.0"`
}

type Config struct {
	// WeatherAPIKey may be empty; resolution then runs fallback-only.
	WeatherAPIKey string `envconfig:"WEATHER_API_KEY"`
	WeatherAPIURL string `envconfig:"WEATHER_API_URL" default:"https://api.weatherapi.com/v1/current.json"`

	TemplatesDir string `envconfig:"TEMPLATES_DIR" default:"./templates"`
	LogsPath     string `envconfig:"LOGS_PATH" default:"./logs/http.log"`

	App     App
	Email   Email
	Breaker Breaker
	Redis   Redis
	Server  Server
	DB      Db
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (r *Redis) Address() string {
	return r.Host + ":" + r.Port
}
