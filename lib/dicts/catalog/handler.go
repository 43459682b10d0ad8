package catalogprovider

import (
	"collab-backend/db"
	dictstore "collab-backend/lib/dicts/store"
	"collab-backend/models"
	dictapimodels "collab-backend/models/api/dict"

	"gorm.io/gorm"
)

// Provider справочники только для чтения: языки, роли, уровни
type Provider interface {
	Languages() ([]dictapimodels.DictView, error)
	Roles() ([]dictapimodels.DictView, error)
	Levels() ([]dictapimodels.DictView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{
		languageStore: dictstore.NewInstance(DB, dictstore.TableLanguages),
		roleStore:     dictstore.NewInstance(DB, dictstore.TableRoles),
		levelStore:    dictstore.NewInstance(DB, dictstore.TableLevels),
	}
}

type impl struct {
	languageStore dictstore.Provider
	roleStore     dictstore.Provider
	levelStore    dictstore.Provider
}

func (i impl) Languages() ([]dictapimodels.DictView, error) {
	return list(i.languageStore)
}

func (i impl) Roles() ([]dictapimodels.DictView, error) {
	return list(i.roleStore)
}

func (i impl) Levels() ([]dictapimodels.DictView, error) {
	return list(i.levelStore)
}

func list(store dictstore.Provider) ([]dictapimodels.DictView, error) {
	recList, err := store.List(models.DictStatusAccepted)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.DictView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.DictConvert(rec))
	}
	return result, nil
}
