package tokenstore

import (
	dbmodels "collab-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.BearerToken) error
	Exist(token string, now time.Time) (bool, error)
	Delete(token string) error
	DeleteByUser(userID, exceptToken string) error
	DeleteExpired(now time.Time) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.BearerToken) error {
	err := i.db.Create(&rec).Error
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения токена")
	}
	return nil
}

func (i impl) Exist(token string, now time.Time) (bool, error) {
	var rowCount int64
	err := i.db.
		Model(&dbmodels.BearerToken{}).
		Where("token = ?", token).
		Where("expires_at > ?", now).
		Count(&rowCount).
		Error
	if err != nil {
		return false, errors.Wrap(err, "ошибка проверки токена")
	}
	return rowCount > 0, nil
}

func (i impl) Delete(token string) error {
	err := i.db.
		Where("token = ?", token).
		Delete(&dbmodels.BearerToken{}).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка удаления токена")
	}
	return nil
}

// DeleteByUser удаляет все токены пользователя, кроме exceptToken (если задан)
func (i impl) DeleteByUser(userID, exceptToken string) error {
	tx := i.db.Where("user_id = ?", userID)
	if exceptToken != "" {
		tx = tx.Where("token <> ?", exceptToken)
	}
	err := tx.Delete(&dbmodels.BearerToken{}).Error
	if err != nil {
		return errors.Wrap(err, "ошибка удаления токенов пользователя")
	}
	return nil
}

func (i impl) DeleteExpired(now time.Time) (int64, error) {
	tx := i.db.
		Where("expires_at <= ?", now).
		Delete(&dbmodels.BearerToken{})
	if tx.Error != nil {
		return 0, errors.Wrap(tx.Error, "ошибка удаления просроченных токенов")
	}
	return tx.RowsAffected, nil
}
