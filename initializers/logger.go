package initializers

import (
	"collab-backend/config"
	"collab-backend/db"
	"collab-backend/fiberlog"
	"collab-backend/lib/dblog"

	log "github.com/sirupsen/logrus"
)

func InitLogger() *fiberlog.Config {
	formatter := &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
	level, err := log.ParseLevel(config.Conf.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetFormatter(formatter)
	log.SetLevel(level)

	logger := log.New()
	logger.SetFormatter(formatter)
	logger.SetLevel(log.DebugLevel)
	return &fiberlog.Config{
		Logger: logger,
		Tags: []string{
			fiberlog.TagBody,
			fiberlog.TagResBody,
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.TagUserID,
			fiberlog.RequestID,
		},
	}
}

// InitDBLog предупреждения и ошибки дублируются в таблицу logs
func InitDBLog(requestLogger *log.Logger) {
	if !*config.Conf.Log.StoreInDB {
		return
	}
	hook := dblog.NewHook(db.DB)
	log.AddHook(hook)
	requestLogger.AddHook(hook)
}
