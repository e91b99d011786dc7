package config

const EnvPrefix = "TIENDA"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "TIENDA_APP_ENV"
	EnvPort     = "TIENDA_APP_PORT"
	EnvDBDSN    = "TIENDA_DB_DSN"
	EnvDBHost   = "TIENDA_DB_HOST"
	EnvDBUser   = "TIENDA_DB_USER"
	EnvDBName   = "TIENDA_DB_NAME"
	EnvRedisURL = "TIENDA_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
