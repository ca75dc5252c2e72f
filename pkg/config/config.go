package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Service  ServiceConfig
	Redis    RedisConfig
	GCP      GCPConfig
	PubSub   PubSubConfig
	Handoff  HandoffConfig
	Sendgrid SendgridConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Handoff.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BASHQUOTE_APP_ENV" required:"true"`
	Port         string `envconfig:"BASHQUOTE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BASHQUOTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BASHQUOTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"BASHQUOTE_SERVICE_KIND" default:"api"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BASHQUOTE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BASHQUOTE_REDIS_ADDR"`
	Password     string        `envconfig:"BASHQUOTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"BASHQUOTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BASHQUOTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BASHQUOTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BASHQUOTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BASHQUOTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BASHQUOTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"BASHQUOTE_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"BASHQUOTE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"BASHQUOTE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	HandoffTopic    string `envconfig:"BASHQUOTE_PUBSUB_HANDOFF_TOPIC" default:"bq-handoff-events"`
	AckSubscription string `envconfig:"BASHQUOTE_PUBSUB_ACK_SUBSCRIPTION" default:"bq-quote-ack"`
}

// HandoffConfig selects and tunes the quote handoff strategy.
type HandoffConfig struct {
	Strategy string `envconfig:"BASHQUOTE_HANDOFF_STRATEGY" default:"mail"`

	// Origin is stamped on outbound frame messages; AllowedOrigins filters
	// inbound acknowledgements. Open dispatch/listening is deliberately not
	// supported.
	Origin         string   `envconfig:"BASHQUOTE_HANDOFF_ORIGIN"`
	AllowedOrigins []string `envconfig:"BASHQUOTE_HANDOFF_ALLOWED_ORIGINS"`

	DispatchDelay   time.Duration `envconfig:"BASHQUOTE_HANDOFF_DISPATCH_DELAY" default:"800ms"`
	SendingLinger   time.Duration `envconfig:"BASHQUOTE_HANDOFF_SENDING_LINGER" default:"1s"`
	ConfirmationTTL time.Duration `envconfig:"BASHQUOTE_HANDOFF_CONFIRMATION_TTL" default:"10s"`
	PublishTimeout  time.Duration `envconfig:"BASHQUOTE_HANDOFF_PUBLISH_TIMEOUT" default:"15s"`

	MailTo string `envconfig:"BASHQUOTE_HANDOFF_MAIL_TO" default:"mbashian@bashfilms.com"`
}

func (h HandoffConfig) validate() error {
	switch h.Strategy {
	case StrategyMail:
	case StrategyFrame:
		if strings.TrimSpace(h.Origin) == "" {
			return fmt.Errorf("%s is required for the frame strategy", EnvHandoffOrigin)
		}
		if len(h.AllowedOrigins) == 0 {
			return fmt.Errorf("%s is required for the frame strategy", EnvHandoffAllowedOrigins)
		}
	default:
		return fmt.Errorf("unknown handoff strategy %q", h.Strategy)
	}
	if h.DispatchDelay < 0 || h.SendingLinger < 0 || h.ConfirmationTTL <= 0 {
		return fmt.Errorf("handoff timers must be positive")
	}
	return nil
}

// SendingTTL is how long the sending indicator stays visible: the dispatch
// delay window plus a short linger after dispatch.
func (h HandoffConfig) SendingTTL() time.Duration {
	return h.DispatchDelay + h.SendingLinger
}

type SendgridConfig struct {
	APIKey      string `envconfig:"BASHQUOTE_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"BASHQUOTE_SENDGRID_FROM_EMAIL" default:"quotes@bashfilms.com"`
}
