package config

type Config interface {
	EnvConfig
	CallbackConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
	Callback
}

func New() Config {
	return mainConfig{}
}
