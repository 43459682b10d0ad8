package userstore

import (
	dbmodels "collab-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.User) (string, error)
	Update(userID string, updMap map[string]interface{}) error
	Delete(userID string) error
	GetByID(userID string) (rec *dbmodels.User, err error)
	FindByEmail(email string) (rec *dbmodels.User, err error)
	FindByEmailOrUsername(email, username string) (list []dbmodels.User, err error)
	ExistByUsername(username, selfID string) (bool, error)
	ExistByEmail(email, selfID string) (bool, error)
	GetByResetCode(code string) (rec *dbmodels.User, err error)
	ClearExpiredResetCodes(now time.Time) (int64, error)
	TechnologyIDs(userID string) ([]string, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.User) (string, error) {
	err := i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(userID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.User{}).
		Where("id = ?", userID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("пользователь не найден")
	}
	return nil
}

func (i impl) Delete(userID string) error {
	return i.db.
		Where("id = ?", userID).
		Delete(&dbmodels.User{}).
		Error
}

func (i impl) GetByID(userID string) (rec *dbmodels.User, err error) {
	rec = &dbmodels.User{}
	err = i.db.
		Model(&dbmodels.User{}).
		Where("id = ?", userID).
		Preload("Technologies").
		Preload("Languages").
		First(rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) FindByEmail(email string) (rec *dbmodels.User, err error) {
	rec = &dbmodels.User{}
	err = i.db.
		Model(&dbmodels.User{}).
		Where("email = ?", strings.ToLower(email)).
		First(rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) FindByEmailOrUsername(email, username string) (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	err = i.db.
		Model(&dbmodels.User{}).
		Where("email = ? or username = ?", strings.ToLower(email), username).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ExistByUsername(username, selfID string) (bool, error) {
	var rowCount int64
	tx := i.db.
		Model(&dbmodels.User{}).
		Where("username = ?", username)
	if selfID != "" {
		tx = tx.Where("id <> ?", selfID)
	}
	err := tx.Count(&rowCount).Error
	if err != nil {
		return false, errors.Wrap(err, "ошибка проверки имени пользователя")
	}
	return rowCount > 0, nil
}

func (i impl) ExistByEmail(email, selfID string) (bool, error) {
	var rowCount int64
	tx := i.db.
		Model(&dbmodels.User{}).
		Where("email = ?", strings.ToLower(email))
	if selfID != "" {
		tx = tx.Where("id <> ?", selfID)
	}
	err := tx.Count(&rowCount).Error
	if err != nil {
		return false, errors.Wrap(err, "ошибка проверки почты")
	}
	return rowCount > 0, nil
}

func (i impl) GetByResetCode(code string) (rec *dbmodels.User, err error) {
	rec = &dbmodels.User{}
	err = i.db.
		Model(&dbmodels.User{}).
		Where("reset_code = ?", code).
		First(rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) ClearExpiredResetCodes(now time.Time) (int64, error) {
	tx := i.db.
		Model(&dbmodels.User{}).
		Where("reset_code is not null").
		Where("reset_code_expires_at < ?", now).
		Updates(map[string]interface{}{
			"reset_code":            nil,
			"reset_code_expires_at": nil,
		})
	if tx.Error != nil {
		return 0, errors.Wrap(tx.Error, "ошибка очистки кодов сброса пароля")
	}
	return tx.RowsAffected, nil
}

func (i impl) TechnologyIDs(userID string) ([]string, error) {
	result := []string{}
	err := i.db.
		Table("users_technologies_relations").
		Where("user_id = ?", userID).
		Pluck("technology_id", &result).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения технологий пользователя")
	}
	return result, nil
}
