package projectstore

import (
	projectapimodels "collab-backend/models/api/project"
	dbmodels "collab-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const openPositionsSelect = "(select count(*) from positions p where p.project_id = projects.id and p.vacancies > 0) as open_positions"

type Provider interface {
	Create(rec dbmodels.Project) (id string, err error)
	GetByID(id string) (rec *dbmodels.ProjectExt, err error)
	GetOwnerID(id string) (ownerID string, err error)
	LockOwnerID(id string) (ownerID string, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id, ownerID string) (deleted bool, err error)
	ListCount(filter projectapimodels.ProjectFilter) (count int64, err error)
	List(filter projectapimodels.ProjectFilter) (list []dbmodels.ProjectExt, err error)
	ListByOwner(ownerID string) (list []dbmodels.Project, err error)
	Latest(limit int) (list []dbmodels.Project, err error)
	SetHasPositions(id string, value bool) error
	RecomputeHasPositions(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Project) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ProjectExt, error) {
	rec := dbmodels.ProjectExt{}
	err := i.db.
		Model(&dbmodels.Project{}).
		Select("projects.*, "+openPositionsSelect).
		Where("projects.id = ?", id).
		Preload("Owner").
		Preload("Technologies").
		Preload("Collaborators").
		Preload("Collaborators.User").
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

// GetOwnerID пустая строка, если проект не найден
func (i impl) GetOwnerID(id string) (string, error) {
	result := []string{}
	err := i.db.
		Model(&dbmodels.Project{}).
		Where("id = ?", id).
		Pluck("owner_id", &result).
		Error
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения владельца проекта")
	}
	if len(result) == 0 {
		return "", nil
	}
	return result[0], nil
}

// LockOwnerID как GetOwnerID, но строка проекта блокируется FOR UPDATE до конца транзакции
func (i impl) LockOwnerID(id string) (string, error) {
	result := []string{}
	err := i.db.
		Model(&dbmodels.Project{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Pluck("owner_id", &result).
		Error
	if err != nil {
		return "", errors.Wrap(err, "ошибка блокировки проекта")
	}
	if len(result) == 0 {
		return "", nil
	}
	return result[0], nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Project{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) Delete(id, ownerID string) (bool, error) {
	tx := i.db.
		Where("id = ?", id).
		Where("owner_id = ?", ownerID).
		Delete(&dbmodels.Project{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected != 0, nil
}

func (i impl) ListCount(filter projectapimodels.ProjectFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.Project{})
	i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества проектов")
		return 0, errors.New("ошибка получения общего количества проектов")
	}
	return rowCount, nil
}

func (i impl) List(filter projectapimodels.ProjectFilter) (list []dbmodels.ProjectExt, err error) {
	list = []dbmodels.ProjectExt{}
	tx := i.db.
		Model(dbmodels.Project{}).
		Select("projects.*, " + openPositionsSelect)
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	i.setPage(tx, page, limit)
	err = tx.
		Order("projects.created_at desc").
		Preload("Technologies").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByOwner(ownerID string) (list []dbmodels.Project, err error) {
	list = []dbmodels.Project{}
	err = i.db.
		Model(dbmodels.Project{}).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Latest(limit int) (list []dbmodels.Project, err error) {
	list = []dbmodels.Project{}
	err = i.db.
		Model(dbmodels.Project{}).
		Order("created_at desc").
		Limit(limit).
		Preload("Technologies").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) SetHasPositions(id string, value bool) error {
	return i.db.
		Model(&dbmodels.Project{}).
		Where("id = ?", id).
		Update("has_positions", value).
		Error
}

// RecomputeHasPositions has_positions = есть ли у проекта позиции с открытыми вакансиями
func (i impl) RecomputeHasPositions(id string) error {
	err := i.db.
		Model(&dbmodels.Project{}).
		Where("id = ?", id).
		Update("has_positions", gorm.Expr("EXISTS (select 1 from positions where project_id = ? and vacancies > 0)", id)).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка пересчета открытых позиций проекта")
	}
	return nil
}

func (i impl) addFilter(tx *gorm.DB, filter projectapimodels.ProjectFilter) {
	if filter.Search != "" {
		tx.Where("LOWER(projects.name) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.OnlyOpen {
		tx.Where("projects.has_positions = true")
	}
}

func (i impl) setPage(tx *gorm.DB, page, limit int) {
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}
