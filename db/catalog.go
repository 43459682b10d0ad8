package db

import (
	dictstore "collab-backend/lib/dicts/store"
	"collab-backend/models"
	dbmodels "collab-backend/models/db"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type catalogItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func fillCatalog(dir, table string) {
	logger := log.WithField("catalog", table)
	added, err := loadCatalog(DB, dir, table)
	if err != nil {
		logger.WithError(err).Error("ошибка предзаполнения справочника")
		return
	}
	if added == 0 {
		logger.Info("справочник заполнен")
		return
	}
	logger.WithField("added", added).Info("справочник предзаполнен")
}

// loadCatalog заполняет пустой справочник из <dir>/<table>.json
func loadCatalog(tx *gorm.DB, dir, table string) (added int, err error) {
	store := dictstore.NewInstance(tx, table)
	count, err := store.Count()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	body, err := os.ReadFile(filepath.Join(dir, table+".json"))
	if err != nil {
		return 0, errors.Wrap(err, "ошибка чтения файла справочника")
	}
	lines := []catalogItem{}
	err = json.Unmarshal(body, &lines)
	if err != nil {
		return 0, errors.Wrap(err, "ошибка сериализации файла справочника")
	}
	for _, item := range lines {
		rec := dbmodels.DictModel{
			Label:  item.Label,
			Value:  item.Value,
			Status: models.DictStatusAccepted,
		}
		if _, err = store.Add(rec); err != nil {
			return added, errors.Wrapf(err, "ошибка добавления %v", item.Label)
		}
		added++
	}
	return added, nil
}
