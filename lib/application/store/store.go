package applicationstore

import (
	"collab-backend/models"
	dbmodels "collab-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const applicantSelect = "a.id as application_id, a.position_id, p.title as position_title, u.id as user_id, u.avatar, u.username, u.bio, " +
	"u.githuburl, u.gitlaburl, u.bitbucketurl, u.linkedinurl, a.status, a.created_at"

type Provider interface {
	Create(rec dbmodels.Application) (id string, err error)
	GetByID(id string) (rec *dbmodels.Application, err error)
	ListApplicants(ownerID, positionID string, status models.ApplicationStatus) (list []dbmodels.ApplicantExt, err error)
	ListPendingByOwner(ownerID string, limit int) (list []dbmodels.ApplicantExt, err error)
	Resolve(positionID, userID string, status models.ApplicationStatus) (updated bool, err error)
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Application) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ListApplicants отклики на позицию владельца ownerID, старые первыми
func (i impl) ListApplicants(ownerID, positionID string, status models.ApplicationStatus) (list []dbmodels.ApplicantExt, err error) {
	list = []dbmodels.ApplicantExt{}
	err = i.applicants().
		Where("a.position_id = ?", positionID).
		Where("p.user_id = ?", ownerID).
		Where("a.status = ?", status).
		Order("a.created_at asc").
		Scan(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения откликов")
	}
	return list, nil
}

func (i impl) ListPendingByOwner(ownerID string, limit int) (list []dbmodels.ApplicantExt, err error) {
	list = []dbmodels.ApplicantExt{}
	err = i.applicants().
		Where("p.user_id = ?", ownerID).
		Where("a.status = ?", models.ApplicationStatusPending).
		Order("a.created_at desc").
		Limit(limit).
		Scan(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения откликов")
	}
	return list, nil
}

// Resolve переводит отклик из pending в status, updated = false если отклика в ожидании нет
func (i impl) Resolve(positionID, userID string, status models.ApplicationStatus) (bool, error) {
	tx := i.db.
		Model(&dbmodels.Application{}).
		Where("position_id = ?", positionID).
		Where("user_id = ?", userID).
		Where("status = ?", models.ApplicationStatusPending).
		Update("status", status)
	if tx.Error != nil {
		return false, errors.Wrap(tx.Error, "ошибка изменения статуса отклика")
	}
	return tx.RowsAffected != 0, nil
}

func (i impl) Delete(id string) error {
	err := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Application{}).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка удаления отклика")
	}
	return nil
}

func (i impl) applicants() *gorm.DB {
	return i.db.
		Table("positions_applications_relations a").
		Select(applicantSelect).
		Joins("join users u on u.id = a.user_id").
		Joins("join positions p on p.id = a.position_id")
}
