package dictstore

import (
	"collab-backend/models"
	dbmodels "collab-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	TableTechnologies = "technologies"
	TableLanguages    = "languages"
	TableRoles        = "roles"
	TableLevels       = "levels"
)

// Provider хранилище справочника, таблица задается при создании
type Provider interface {
	List(status models.DictStatus) ([]dbmodels.DictModel, error)
	Count() (int64, error)
	Add(rec dbmodels.DictModel) (id string, err error)
	GetByID(id string) (*dbmodels.DictModel, error)
	CountByIDs(ids []string, status models.DictStatus) (int64, error)
}

func NewInstance(DB *gorm.DB, table string) Provider {
	return &impl{
		db:    DB,
		table: table,
	}
}

type impl struct {
	db    *gorm.DB
	table string
}

func (i impl) List(status models.DictStatus) ([]dbmodels.DictModel, error) {
	result := []dbmodels.DictModel{}
	tx := i.db.Table(i.table)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	err := tx.Order("label asc").Find(&result).Error
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка получения списка %v", i.table)
	}
	return result, nil
}

func (i impl) Count() (int64, error) {
	var rowCount int64
	err := i.db.Table(i.table).Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrapf(err, "ошибка получения количества записей %v", i.table)
	}
	return rowCount, nil
}

func (i impl) Add(rec dbmodels.DictModel) (id string, err error) {
	err = i.db.Table(i.table).Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.DictModel, error) {
	rec := dbmodels.DictModel{}
	err := i.db.Table(i.table).
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

func (i impl) CountByIDs(ids []string, status models.DictStatus) (int64, error) {
	var rowCount int64
	if len(ids) == 0 {
		return 0, nil
	}
	tx := i.db.Table(i.table).Where("id in (?)", ids)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	err := tx.Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrapf(err, "ошибка проверки записей %v", i.table)
	}
	return rowCount, nil
}
