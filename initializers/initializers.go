package initializers

import (
	"collab-backend/config"
	"collab-backend/fiberlog"
	applicationhandler "collab-backend/lib/application"
	authhandler "collab-backend/lib/auth"
	tokencleanupworker "collab-backend/lib/auth/token-cleanup-worker"
	catalogprovider "collab-backend/lib/dicts/catalog"
	technologyprovider "collab-backend/lib/dicts/technology"
	xlsexport "collab-backend/lib/export/xls"
	feedhandler "collab-backend/lib/feed"
	positionhandler "collab-backend/lib/position"
	projecthandler "collab-backend/lib/project"
	userhandler "collab-backend/lib/user"
	"context"
	"time"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger()
	InitDBConnection()
	InitDBLog(LoggerConfig.Logger)
	InitSmtp()
	catalogprovider.NewHandler()
	technologyprovider.NewHandler()
	authhandler.NewHandler()
	userhandler.NewHandler()
	projecthandler.NewHandler()
	positionhandler.NewHandler()
	xlsexport.NewHandler()
	applicationhandler.NewHandler()
	feedhandler.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача удаления просроченных токенов и кодов сброса пароля
	tokencleanupworker.StartWorker(ctx, time.Duration(config.Conf.Workers.TokenCleanupIntervalSec)*time.Second)
}
