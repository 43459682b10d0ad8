package technologyprovider

import (
	"collab-backend/db"
	dictstore "collab-backend/lib/dicts/store"
	technologystore "collab-backend/lib/dicts/technology/store"
	apperrors "collab-backend/lib/utils/app-errors"
	"collab-backend/models"
	dictapimodels "collab-backend/models/api/dict"
	dbmodels "collab-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	List() ([]dictapimodels.DictView, error)
	Request(userID string, data dictapimodels.TechnologyRequest) (id string, err error)
	ListByProject(projectID string) ([]dictapimodels.DictView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, log.StandardLogger())
}

func NewInstance(DB *gorm.DB, logger *log.Logger) Provider {
	return impl{
		store:          dictstore.NewInstance(DB, dictstore.TableTechnologies),
		relationsStore: technologystore.NewInstance(DB),
		logger:         logger,
	}
}

type impl struct {
	store          dictstore.Provider
	relationsStore technologystore.Provider
	logger         *log.Logger
}

func (i impl) List() ([]dictapimodels.DictView, error) {
	list, err := i.store.List(models.DictStatusAccepted)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func (i impl) Request(userID string, data dictapimodels.TechnologyRequest) (id string, err error) {
	rec := dbmodels.DictModel{
		Label:  data.Label,
		Value:  data.ToValue(),
		Status: models.DictStatusPending,
	}
	id, err = i.store.Add(rec)
	if err != nil {
		if apperrors.IsDuplicate(err) {
			return "", apperrors.Conflict("такая технология уже существует")
		}
		return "", err
	}
	i.logger.
		WithField("user_id", userID).
		WithField("technology_id", id).
		Info("предложена новая технология")
	return id, nil
}

func (i impl) ListByProject(projectID string) ([]dictapimodels.DictView, error) {
	list, err := i.relationsStore.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func convertList(list []dbmodels.DictModel) []dictapimodels.DictView {
	result := make([]dictapimodels.DictView, 0, len(list))
	for _, rec := range list {
		result = append(result, dictapimodels.DictConvert(rec))
	}
	return result
}
