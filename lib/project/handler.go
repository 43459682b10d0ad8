package projecthandler

import (
	"collab-backend/db"
	dictstore "collab-backend/lib/dicts/store"
	technologystore "collab-backend/lib/dicts/technology/store"
	collaboratorstore "collab-backend/lib/project/collaborator-store"
	projectstore "collab-backend/lib/project/store"
	apperrors "collab-backend/lib/utils/app-errors"
	"collab-backend/lib/utils/helpers"
	"collab-backend/models"
	projectapimodels "collab-backend/models/api/project"
	dbmodels "collab-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(ownerID string, data projectapimodels.ProjectData) (projectapimodels.ProjectView, error)
	GetByID(id string) (projectapimodels.ProjectView, error)
	List(filter projectapimodels.ProjectFilter) (list []projectapimodels.ProjectView, rowCount int64, err error)
	ListByUser(userID string) (projectapimodels.ProjectsByUser, error)
	Update(id, ownerID string, data projectapimodels.ProjectData) (projectapimodels.ProjectView, error)
	Delete(id, ownerID string) error
	RemoveCollaborator(ownerID, projectID, userID string) error
	LeaveProject(userID, projectID string) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, log.StandardLogger())
}

func NewInstance(DB *gorm.DB, logger *log.Logger) Provider {
	return impl{
		db:                DB,
		store:             projectstore.NewInstance(DB),
		collaboratorStore: collaboratorstore.NewInstance(DB),
		logger:            logger,
	}
}

type impl struct {
	db                *gorm.DB
	store             projectstore.Provider
	collaboratorStore collaboratorstore.Provider
	logger            *log.Logger
}

func (i impl) getLogger(projectID, userID string) *log.Entry {
	logger := log.NewEntry(i.logger)
	if projectID != "" {
		logger = logger.WithField("project_id", projectID)
	}
	if userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

func checkTechnologies(tx *gorm.DB, ids []string) error {
	count, err := dictstore.NewInstance(tx, dictstore.TableTechnologies).CountByIDs(ids, models.DictStatusAccepted)
	if err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return apperrors.Validation("указаны несуществующие технологии")
	}
	return nil
}

// checkOwner NotFound если проекта нет, NotAuthorized если requester не владелец
func checkOwner(projectOwner, ownerID string) error {
	if projectOwner == "" {
		return apperrors.NotFound("проект не найден")
	}
	if projectOwner != ownerID {
		return apperrors.NotAuthorized("пользователь не является владельцем проекта")
	}
	return nil
}

func (i impl) checkOwned(id, ownerID string) error {
	projectOwner, err := i.store.GetOwnerID(id)
	if err != nil {
		return err
	}
	return checkOwner(projectOwner, ownerID)
}

// checkRemovedTechnologies технологии, которые убираются из проекта, не должны использоваться его позициями
func checkRemovedTechnologies(tx *gorm.DB, id string, technologies []string) error {
	store := technologystore.NewInstance(tx)
	current, err := store.ProjectTechnologyIDs(id)
	if err != nil {
		return err
	}
	removed := difference(current, technologies)
	if len(removed) == 0 {
		return nil
	}
	used, err := store.UsedByProjectPositions(id, removed)
	if err != nil {
		return err
	}
	if len(used) != 0 {
		return apperrors.InvalidTechnologySet("нельзя удалить технологии, которые используются в позициях проекта")
	}
	return nil
}

func (i impl) Create(ownerID string, data projectapimodels.ProjectData) (projectapimodels.ProjectView, error) {
	logger := i.getLogger("", ownerID)
	technologies := helpers.Unique(data.Technologies)
	recID := ""
	err := i.db.Transaction(func(tx *gorm.DB) error {
		if err := checkTechnologies(tx, technologies); err != nil {
			return err
		}
		rec := dbmodels.Project{
			Name:         strings.TrimSpace(data.Name),
			Description:  data.Description,
			Mission:      data.Mission,
			ProjectURL:   data.ProjectURL,
			HasPositions: false,
			OwnerID:      ownerID,
		}
		id, err := projectstore.NewInstance(tx).Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания проекта")
		}
		recID = id
		return technologystore.NewInstance(tx).ReplaceProjectRelations(recID, technologies)
	})
	if err != nil {
		return projectapimodels.ProjectView{}, err
	}
	logger.WithField("rec_id", recID).Info("Создан проект")
	return i.GetByID(recID)
}

func (i impl) GetByID(id string) (projectapimodels.ProjectView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return projectapimodels.ProjectView{}, err
	}
	if rec == nil {
		return projectapimodels.ProjectView{}, apperrors.NotFound("проект не найден")
	}
	return projectapimodels.ProjectConvert(*rec), nil
}

func (i impl) List(filter projectapimodels.ProjectFilter) (list []projectapimodels.ProjectView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]projectapimodels.ProjectView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, projectapimodels.ProjectConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) ListByUser(userID string) (projectapimodels.ProjectsByUser, error) {
	owned, err := i.store.ListByOwner(userID)
	if err != nil {
		return projectapimodels.ProjectsByUser{}, err
	}
	collaborations, err := i.collaboratorStore.ListByUser(userID)
	if err != nil {
		return projectapimodels.ProjectsByUser{}, err
	}
	result := projectapimodels.ProjectsByUser{
		Owned:          make([]projectapimodels.ProjectView, 0, len(owned)),
		Collaborations: make([]projectapimodels.ProjectView, 0, len(collaborations)),
	}
	for _, rec := range owned {
		result.Owned = append(result.Owned, projectapimodels.ProjectConvert(dbmodels.ProjectExt{Project: rec}))
	}
	for _, item := range collaborations {
		if item.Project == nil {
			continue
		}
		result.Collaborations = append(result.Collaborations, projectapimodels.ProjectConvert(dbmodels.ProjectExt{Project: *item.Project}))
	}
	return result, nil
}

func (i impl) Update(id, ownerID string, data projectapimodels.ProjectData) (projectapimodels.ProjectView, error) {
	logger := i.getLogger(id, ownerID)
	technologies := helpers.Unique(data.Technologies)
	err := i.db.Transaction(func(tx *gorm.DB) error {
		// FOR UPDATE: позиции проекта не меняют набор технологий, пока идет проверка
		projectOwner, err := projectstore.NewInstance(tx).LockOwnerID(id)
		if err != nil {
			return err
		}
		if err := checkOwner(projectOwner, ownerID); err != nil {
			return err
		}
		if err := checkTechnologies(tx, technologies); err != nil {
			return err
		}
		if err := checkRemovedTechnologies(tx, id, technologies); err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"name":        strings.TrimSpace(data.Name),
			"description": data.Description,
			"mission":     data.Mission,
			"project_url": data.ProjectURL,
		}
		err = projectstore.NewInstance(tx).Update(id, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка обновления проекта")
		}
		return technologystore.NewInstance(tx).ReplaceProjectRelations(id, technologies)
	})
	if err != nil {
		return projectapimodels.ProjectView{}, err
	}
	logger.Info("обновлен проект")
	return i.GetByID(id)
}

func (i impl) Delete(id, ownerID string) error {
	if err := i.checkOwned(id, ownerID); err != nil {
		return err
	}
	deleted, err := i.store.Delete(id, ownerID)
	if err != nil {
		return errors.Wrap(err, "ошибка удаления проекта")
	}
	if !deleted {
		return apperrors.NotFound("проект не найден")
	}
	i.getLogger(id, ownerID).Info("удален проект")
	return nil
}

func (i impl) RemoveCollaborator(ownerID, projectID, userID string) error {
	if err := i.checkOwned(projectID, ownerID); err != nil {
		return err
	}
	deleted, err := i.collaboratorStore.Delete(projectID, userID)
	if err != nil {
		return errors.Wrap(err, "ошибка удаления участника проекта")
	}
	if !deleted {
		return apperrors.NotFound("участник проекта не найден")
	}
	i.getLogger(projectID, ownerID).WithField("collaborator_id", userID).Info("участник удален из проекта")
	return nil
}

func (i impl) LeaveProject(userID, projectID string) error {
	deleted, err := i.collaboratorStore.Delete(projectID, userID)
	if err != nil {
		return errors.Wrap(err, "ошибка выхода из проекта")
	}
	if !deleted {
		return apperrors.NotFound("пользователь не является участником проекта")
	}
	i.getLogger(projectID, userID).Info("участник покинул проект")
	return nil
}

// difference элементы from, которых нет в to
func difference(from, to []string) []string {
	set := make(map[string]struct{}, len(to))
	for _, item := range to {
		set[item] = struct{}{}
	}
	result := []string{}
	for _, item := range from {
		if _, ok := set[item]; !ok {
			result = append(result, item)
		}
	}
	return result
}
