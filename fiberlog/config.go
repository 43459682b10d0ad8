package fiberlog

import "github.com/sirupsen/logrus"

// Config настройки логирования запросов
type Config struct {
	Logger *logrus.Logger
	Tags   []string // поля записи, см. Tag*
}

// ConfigDefault используется, если New вызван без настроек
var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		TagUserID,
	},
}
