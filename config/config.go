package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr  string `default:"" env:"APP_HOST"`
		Port        int    `default:"8080"  env:"APP_PORT"`
		CorsOrigins string `default:"*" env:"APP_CORS_ORIGINS"`
		SwaggerFile string `default:"./docs/swagger.json" env:"APP_SWAGGER_FILE"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"collab" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret            string `default:"secret" env:"JWT_SECRET"`
		JWTExpireInSec       int64  `default:"604800" env:"JWT_EXPIRE_IN_SEC"`
		CookieName           string `default:"authorization" env:"AUTH_COOKIE_NAME"`
		CookieSecure         *bool  `default:"false" env:"AUTH_COOKIE_SECURE"`
		ResetCodeExpireInSec int64  `default:"3600" env:"RESET_CODE_EXPIRE_IN_SEC"`
	}
	Smtp struct {
		User              string `default:"" env:"SMTP_USER"`
		Password          string `default:"" env:"SMTP_PASSWORD"`
		Host              string `default:"" env:"SMTP_HOST"`
		Port              string `default:"" env:"SMTP_PORT"`
		TLSEnabled        *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		EmailFrom         string `default:"" env:"SMTP_EMAIL_FROM"`
		PasswordResetLink string `default:"http://localhost:3000/password-reset" env:"PASSWORD_RESET_LINK"`
	}
	Log struct {
		Level     string `default:"info" env:"LOG_LEVEL"`
		StoreInDB *bool  `default:"true" env:"LOG_STORE_IN_DB"`
	}
	Metrics struct {
		Enabled *bool  `default:"true" env:"METRICS_ENABLED"`
		Path    string `default:"/metrics" env:"METRICS_PATH"`
	}
	Workers struct {
		TokenCleanupIntervalSec int `default:"3600" env:"TOKEN_CLEANUP_INTERVAL_SEC"`
	}
	Preload struct {
		Dir string `default:"./static_preload" env:"PRELOAD_DIR"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
