package collaboratorstore

import (
	dbmodels "collab-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Collaborator) (id string, err error)
	ListByProject(projectID string) (list []dbmodels.Collaborator, err error)
	ListByUser(userID string) (list []dbmodels.Collaborator, err error)
	Delete(projectID, userID string) (deleted bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Collaborator) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByProject(projectID string) (list []dbmodels.Collaborator, err error) {
	list = []dbmodels.Collaborator{}
	err = i.db.
		Model(dbmodels.Collaborator{}).
		Where("project_id = ?", projectID).
		Preload("User").
		Order("created_at asc").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения участников проекта")
	}
	return list, nil
}

func (i impl) ListByUser(userID string) (list []dbmodels.Collaborator, err error) {
	list = []dbmodels.Collaborator{}
	err = i.db.
		Model(dbmodels.Collaborator{}).
		Where("user_id = ?", userID).
		Preload("Project").
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения проектов участника")
	}
	return list, nil
}

func (i impl) Delete(projectID, userID string) (bool, error) {
	tx := i.db.
		Where("project_id = ?", projectID).
		Where("user_id = ?", userID).
		Delete(&dbmodels.Collaborator{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected != 0, nil
}
