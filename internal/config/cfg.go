package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Server struct {
	Host        string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	HTTPPort    string `envconfig:"SERVER_HTTP_PORT" default:"8080"`
	ReadTimeout int    `envconfig:"SERVER_TIMEOUT" default:"10"`
}

type Db struct {
	Dialect string `envconfig:"DB_DIALECT" default:"sqlite"`
	Source  string `envconfig:"DB_NAME" default:"blog.db"`
}

type Redis struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"REDIS_TTL" default:"5m"`
}

type Email struct {
	User     string        `envconfig:"EMAIL_USER"`
	Host     string        `envconfig:"EMAIL_HOST"`
	Port     string        `envconfig:"EMAIL_PORT" default:"587"`
	Password string        `envconfig:"EMAIL_PASSWORD"`
	From     string        `envconfig:"EMAIL_FROM"`
	Timeout  time.Duration `envconfig:"EMAIL_TIMEOUT" default:"10s"`
}

type RabbitMQ struct {
	Host string `envconfig:"RABBITMQ_HOST"`
	Port string `envconfig:"RABBITMQ_PORT" default:"5672"`
	User string `envconfig:"RABBITMQ_USER" default:"guest"`
	Pass string `envconfig:"RABBITMQ_PASSWORD" default:"guest"`
}

type Breaker struct {
	Interval     time.Duration `envconfig:"BREAKER_INTERVAL" default:"30s"`
	Timeout      time.Duration `envconfig:"BREAKER_TIMEOUT" default:"10s"`
	RepeatNumber uint32        `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type Config struct {
	UnsubscribeSecret   string `envconfig:"UNSUBSCRIBE_SECRET" default:"default-secret-key"`
	PublicBaseURL       string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`
	UnsubscribeRedirect string `envconfig:"UNSUBSCRIBE_REDIRECT_URL" default:"/unsubscribe/success"`

	UploadsDir    string `envconfig:"UPLOADS_DIR" default:"./public/uploads"`
	LogsPath      string `envconfig:"LOGS_PATH" default:"logs/blog.log"`
	AccessLogPath string `envconfig:"ACCESS_LOG_PATH" default:"logs/access.log"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`

	// six-field cron spec, seconds first
	StatsSchedule string `envconfig:"STATS_SCHEDULE" default:"0 */5 * * * *"`

	Server   Server
	DB       Db
	Redis    Redis
	Email    Email
	RabbitMQ RabbitMQ
	Breaker  Breaker
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.HTTPPort
}

func (e *Email) Enabled() bool {
	return e.Host != "" && e.From != ""
}

func (r *Redis) Enabled() bool {
	return r.Addr != ""
}

func (r *RabbitMQ) Enabled() bool {
	return r.Host != ""
}

func (r *RabbitMQ) Address() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", r.User, r.Pass, r.Host, r.Port)
}
