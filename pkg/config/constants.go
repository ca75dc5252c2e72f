package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names.
const EnvPrefix = "bashquote"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Handoff strategies.
const (
	StrategyMail  = "mail"
	StrategyFrame = "frame"
)

// Service kinds.
const (
	ServiceKindAPI       = "api"
	ServiceKindAckWorker = "ack-worker"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv                = "BASHQUOTE_APP_ENV"
	EnvPort                  = "BASHQUOTE_APP_PORT"
	EnvRedisURL              = "BASHQUOTE_REDIS_URL"
	EnvGCPProjectID          = "BASHQUOTE_GCP_PROJECT_ID"
	EnvHandoffStrategy       = "BASHQUOTE_HANDOFF_STRATEGY"
	EnvHandoffOrigin         = "BASHQUOTE_HANDOFF_ORIGIN"
	EnvHandoffAllowedOrigins = "BASHQUOTE_HANDOFF_ALLOWED_ORIGINS"
)
