package db

import (
	dbmodels "collab-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Technology{}, &dbmodels.Language{}, &dbmodels.Role{}, &dbmodels.Level{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры справочников")
	}
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.BearerToken{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры BearerToken")
	}
	if err := DB.AutoMigrate(&dbmodels.Project{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Project")
	}
	if err := DB.AutoMigrate(&dbmodels.Position{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Position")
	}
	if err := DB.AutoMigrate(&dbmodels.Application{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Application")
	}
	if err := DB.AutoMigrate(&dbmodels.Collaborator{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Collaborator")
	}
	if err := DB.AutoMigrate(&dbmodels.LogRecord{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры LogRecord")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
