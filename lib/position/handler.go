package positionhandler

import (
	"collab-backend/db"
	dictstore "collab-backend/lib/dicts/store"
	technologystore "collab-backend/lib/dicts/technology/store"
	"collab-backend/lib/metrics"
	positionstore "collab-backend/lib/position/store"
	projectstore "collab-backend/lib/project/store"
	apperrors "collab-backend/lib/utils/app-errors"
	"collab-backend/lib/utils/helpers"
	positionapimodels "collab-backend/models/api/position"
	dbmodels "collab-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(ownerID string, data positionapimodels.PositionData) (positionapimodels.PositionView, error)
	GetByID(id string) (positionapimodels.PositionView, error)
	ListByProject(projectID string) ([]positionapimodels.PositionView, error)
	ListAll(requesterID string, filter positionapimodels.PositionFilter) (list []positionapimodels.PositionView, rowCount int64, err error)
	Update(id, ownerID string, data positionapimodels.PositionData) (positionapimodels.PositionView, error)
	Delete(id, ownerID string) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, log.StandardLogger())
}

func NewInstance(DB *gorm.DB, logger *log.Logger) Provider {
	return impl{
		db:     DB,
		store:  positionstore.NewInstance(DB),
		logger: logger,
	}
}

type impl struct {
	db     *gorm.DB
	store  positionstore.Provider
	logger *log.Logger
}

func (i impl) getLogger(positionID, projectID, userID string) *log.Entry {
	logger := log.NewEntry(i.logger)
	if positionID != "" {
		logger = logger.WithField("position_id", positionID)
	}
	if projectID != "" {
		logger = logger.WithField("project_id", projectID)
	}
	if userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

// checkDependency роль и уровень существуют, requester владелец проекта, технологии входят в проект.
// Вызывается внутри транзакции: строка проекта остается заблокированной до записи позиции
func checkDependency(tx *gorm.DB, ownerID string, data positionapimodels.PositionData) ([]string, error) {
	role, err := dictstore.NewInstance(tx, dictstore.TableRoles).GetByID(data.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperrors.Validation("роль не найдена")
	}
	level, err := dictstore.NewInstance(tx, dictstore.TableLevels).GetByID(data.LevelID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, apperrors.Validation("уровень не найден")
	}
	projectOwner, err := projectstore.NewInstance(tx).LockOwnerID(data.ProjectID)
	if err != nil {
		return nil, err
	}
	if projectOwner != ownerID {
		return nil, apperrors.NotAuthorized("пользователь не является владельцем проекта")
	}
	technologies := helpers.Unique(data.Technologies)
	projectTechnologies, err := technologystore.NewInstance(tx).ProjectTechnologyIDs(data.ProjectID)
	if err != nil {
		return nil, err
	}
	if !isSubset(technologies, projectTechnologies) {
		return nil, apperrors.InvalidTechnologySet("технологии позиции не входят в технологии проекта")
	}
	return technologies, nil
}

func (i impl) Create(ownerID string, data positionapimodels.PositionData) (positionapimodels.PositionView, error) {
	logger := i.getLogger("", data.ProjectID, ownerID)
	recID := ""
	err := i.db.Transaction(func(tx *gorm.DB) error {
		technologies, err := checkDependency(tx, ownerID, data)
		if err != nil {
			return err
		}
		rec := dbmodels.Position{
			Title:          strings.TrimSpace(data.Title),
			Description:    data.Description,
			Qualifications: data.Qualifications,
			Duties:         data.Duties,
			Vacancies:      data.Vacancies,
			RoleID:         data.RoleID,
			LevelID:        data.LevelID,
			ProjectID:      data.ProjectID,
			UserID:         ownerID,
		}
		id, err := positionstore.NewInstance(tx).Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания позиции")
		}
		recID = id
		err = projectstore.NewInstance(tx).SetHasPositions(data.ProjectID, true)
		if err != nil {
			return errors.Wrap(err, "ошибка обновления проекта")
		}
		return technologystore.NewInstance(tx).ReplacePositionRelations(recID, technologies)
	})
	if err != nil {
		return positionapimodels.PositionView{}, err
	}
	metrics.PositionCreated()
	logger.WithField("rec_id", recID).Info("Создана позиция")
	return i.GetByID(recID)
}

func (i impl) GetByID(id string) (positionapimodels.PositionView, error) {
	rec, err := i.store.GetOpenByID(id)
	if err != nil {
		return positionapimodels.PositionView{}, err
	}
	if rec == nil {
		return positionapimodels.PositionView{}, apperrors.NotFound("позиция не найдена")
	}
	return positionapimodels.PositionConvert(*rec), nil
}

func (i impl) ListByProject(projectID string) ([]positionapimodels.PositionView, error) {
	recList, err := i.store.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	return convertList(recList), nil
}

func (i impl) ListAll(requesterID string, filter positionapimodels.PositionFilter) (list []positionapimodels.PositionView, rowCount int64, err error) {
	filter.Technologies = helpers.Unique(filter.Technologies)
	rowCount, err = i.store.ListAllCount(requesterID, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.ListAll(requesterID, filter)
	if err != nil {
		return nil, 0, err
	}
	return convertList(recList), rowCount, nil
}

func (i impl) Update(id, ownerID string, data positionapimodels.PositionData) (positionapimodels.PositionView, error) {
	logger := i.getLogger(id, data.ProjectID, ownerID)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return positionapimodels.PositionView{}, err
	}
	if rec == nil {
		return positionapimodels.PositionView{}, apperrors.NotFound("позиция не найдена")
	}
	// позицию нельзя перенести в другой проект
	data.ProjectID = rec.ProjectID
	err = i.db.Transaction(func(tx *gorm.DB) error {
		technologies, err := checkDependency(tx, ownerID, data)
		if err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"title":          strings.TrimSpace(data.Title),
			"description":    data.Description,
			"qualifications": data.Qualifications,
			"duties":         data.Duties,
			"vacancies":      data.Vacancies,
			"role_id":        data.RoleID,
			"level_id":       data.LevelID,
		}
		err = positionstore.NewInstance(tx).Update(id, ownerID, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка обновления позиции")
		}
		err = technologystore.NewInstance(tx).ReplacePositionRelations(id, technologies)
		if err != nil {
			return err
		}
		return projectstore.NewInstance(tx).RecomputeHasPositions(rec.ProjectID)
	})
	if err != nil {
		return positionapimodels.PositionView{}, err
	}
	logger.Info("обновлена позиция")
	return i.GetByID(id)
}

func (i impl) Delete(id, ownerID string) error {
	logger := i.getLogger(id, "", ownerID)
	rec, err := i.store.GetOwned(id, ownerID)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("позиция не найдена")
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		deleted, err := positionstore.NewInstance(tx).Delete(id, ownerID)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления позиции")
		}
		if !deleted {
			return apperrors.NotFound("позиция не найдена")
		}
		return projectstore.NewInstance(tx).RecomputeHasPositions(rec.ProjectID)
	})
	if err != nil {
		return err
	}
	logger.Info("удалена позиция")
	return nil
}

func convertList(recList []dbmodels.PositionExt) []positionapimodels.PositionView {
	result := make([]positionapimodels.PositionView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, positionapimodels.PositionConvert(rec))
	}
	return result
}

func isSubset(items, set []string) bool {
	lookup := make(map[string]struct{}, len(set))
	for _, item := range set {
		lookup[item] = struct{}{}
	}
	for _, item := range items {
		if _, ok := lookup[item]; !ok {
			return false
		}
	}
	return true
}
