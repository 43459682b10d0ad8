package technologystore

import (
	dbmodels "collab-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Provider связи технологий с пользователями, проектами и позициями
type Provider interface {
	ListByProject(projectID string) ([]dbmodels.DictModel, error)
	ProjectTechnologyIDs(projectID string) ([]string, error)
	ListByPosition(positionID string) ([]dbmodels.DictModel, error)
	UsedByProjectPositions(projectID string, ids []string) ([]string, error)
	ReplaceProjectRelations(projectID string, ids []string) error
	ReplacePositionRelations(positionID string, ids []string) error
	ReplaceUserRelations(userID string, ids []string) error
	ReplaceUserLanguages(userID string, ids []string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

type projectTechnology struct {
	ProjectID    string
	TechnologyID string
}

type positionTechnology struct {
	PositionID   string
	TechnologyID string
}

type userTechnology struct {
	UserID       string
	TechnologyID string
}

type userLanguage struct {
	UserID     string
	LanguageID string
}

func (i impl) ListByProject(projectID string) ([]dbmodels.DictModel, error) {
	result := []dbmodels.DictModel{}
	err := i.db.
		Table("technologies").
		Select("technologies.*").
		Joins("join projects_technologies_relations ptr on ptr.technology_id = technologies.id").
		Where("ptr.project_id = ?", projectID).
		Order("technologies.label asc").
		Find(&result).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения технологий проекта")
	}
	return result, nil
}

func (i impl) ProjectTechnologyIDs(projectID string) ([]string, error) {
	result := []string{}
	err := i.db.
		Table("projects_technologies_relations").
		Where("project_id = ?", projectID).
		Pluck("technology_id", &result).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения технологий проекта")
	}
	return result, nil
}

func (i impl) ListByPosition(positionID string) ([]dbmodels.DictModel, error) {
	result := []dbmodels.DictModel{}
	err := i.db.
		Table("technologies").
		Select("technologies.*").
		Joins("join positions_technologies_relations ptr on ptr.technology_id = technologies.id").
		Where("ptr.position_id = ?", positionID).
		Order("technologies.label asc").
		Find(&result).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения технологий позиции")
	}
	return result, nil
}

// UsedByProjectPositions технологии из ids, которые используются позициями проекта
func (i impl) UsedByProjectPositions(projectID string, ids []string) ([]string, error) {
	result := []string{}
	if len(ids) == 0 {
		return result, nil
	}
	err := i.db.
		Table("positions_technologies_relations ptr").
		Joins("join positions p on p.id = ptr.position_id").
		Where("p.project_id = ?", projectID).
		Where("ptr.technology_id in (?)", ids).
		Distinct().
		Pluck("ptr.technology_id", &result).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка проверки технологий позиций проекта")
	}
	return result, nil
}

func (i impl) ReplaceProjectRelations(projectID string, ids []string) error {
	err := i.db.
		Table("projects_technologies_relations").
		Where("project_id = ?", projectID).
		Delete(&projectTechnology{}).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка удаления технологий проекта")
	}
	if len(ids) == 0 {
		return nil
	}
	list := make([]projectTechnology, 0, len(ids))
	for _, id := range ids {
		list = append(list, projectTechnology{ProjectID: projectID, TechnologyID: id})
	}
	err = i.db.Table("projects_technologies_relations").Create(&list).Error
	if err != nil {
		return errors.Wrap(err, "ошибка добавления технологий проекта")
	}
	return nil
}

func (i impl) ReplacePositionRelations(positionID string, ids []string) error {
	err := i.db.
		Table("positions_technologies_relations").
		Where("position_id = ?", positionID).
		Delete(&positionTechnology{}).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка удаления технологий позиции")
	}
	if len(ids) == 0 {
		return nil
	}
	list := make([]positionTechnology, 0, len(ids))
	for _, id := range ids {
		list = append(list, positionTechnology{PositionID: positionID, TechnologyID: id})
	}
	err = i.db.Table("positions_technologies_relations").Create(&list).Error
	if err != nil {
		return errors.Wrap(err, "ошибка добавления технологий позиции")
	}
	return nil
}

func (i impl) ReplaceUserRelations(userID string, ids []string) error {
	err := i.db.
		Table("users_technologies_relations").
		Where("user_id = ?", userID).
		Delete(&userTechnology{}).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка удаления технологий пользователя")
	}
	if len(ids) == 0 {
		return nil
	}
	list := make([]userTechnology, 0, len(ids))
	for _, id := range ids {
		list = append(list, userTechnology{UserID: userID, TechnologyID: id})
	}
	err = i.db.Table("users_technologies_relations").Create(&list).Error
	if err != nil {
		return errors.Wrap(err, "ошибка добавления технологий пользователя")
	}
	return nil
}

func (i impl) ReplaceUserLanguages(userID string, ids []string) error {
	err := i.db.
		Table("users_languages_relations").
		Where("user_id = ?", userID).
		Delete(&userLanguage{}).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка удаления языков пользователя")
	}
	if len(ids) == 0 {
		return nil
	}
	list := make([]userLanguage, 0, len(ids))
	for _, id := range ids {
		list = append(list, userLanguage{UserID: userID, LanguageID: id})
	}
	err = i.db.Table("users_languages_relations").Create(&list).Error
	if err != nil {
		return errors.Wrap(err, "ошибка добавления языков пользователя")
	}
	return nil
}
