package positionstore

import (
	"collab-backend/models"
	positionapimodels "collab-backend/models/api/position"
	dbmodels "collab-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const applicantsSelect = "(select count(*) from positions_applications_relations a where a.position_id = positions.id and a.status = 'pending') as applicants"

type Provider interface {
	Create(rec dbmodels.Position) (id string, err error)
	GetByID(id string) (rec *dbmodels.Position, err error)
	GetOwned(id, userID string) (rec *dbmodels.Position, err error)
	GetOpenByID(id string) (rec *dbmodels.PositionExt, err error)
	GetForApply(id, applicantID string) (rec *dbmodels.Position, err error)
	ListByProject(projectID string) (list []dbmodels.PositionExt, err error)
	ListAllCount(requesterID string, filter positionapimodels.PositionFilter) (count int64, err error)
	ListAll(requesterID string, filter positionapimodels.PositionFilter) (list []dbmodels.PositionExt, err error)
	ListRecommended(userID string, technologyIDs []string, limit int) (list []dbmodels.PositionExt, err error)
	Update(id, userID string, updMap map[string]interface{}) error
	Delete(id, userID string) (deleted bool, err error)
	DecrementVacancy(id string) (remaining int, ok bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Position) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Position, error) {
	rec := dbmodels.Position{}
	err := i.db.
		Model(&dbmodels.Position{}).
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

func (i impl) GetOwned(id, userID string) (*dbmodels.Position, error) {
	rec := dbmodels.Position{}
	err := i.db.
		Model(&dbmodels.Position{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
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

func (i impl) GetOpenByID(id string) (*dbmodels.PositionExt, error) {
	rec := dbmodels.PositionExt{}
	err := i.db.
		Model(&dbmodels.Position{}).
		Select("positions.*, "+applicantsSelect).
		Where("positions.id = ?", id).
		Where("positions.vacancies > 0").
		Preload("Role").
		Preload("Level").
		Preload("Project").
		Preload("Technologies").
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

// GetForApply открытая чужая позиция под блокировкой FOR SHARE, вызывать внутри транзакции
func (i impl) GetForApply(id, applicantID string) (*dbmodels.Position, error) {
	rec := dbmodels.Position{}
	err := i.db.
		Model(&dbmodels.Position{}).
		Clauses(clause.Locking{Strength: "SHARE"}).
		Where("id = ?", id).
		Where("user_id <> ?", applicantID).
		Where("vacancies > 0").
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

func (i impl) ListByProject(projectID string) (list []dbmodels.PositionExt, err error) {
	list = []dbmodels.PositionExt{}
	err = i.db.
		Model(dbmodels.Position{}).
		Select("positions.*, "+applicantsSelect).
		Where("positions.project_id = ?", projectID).
		Where("positions.vacancies > 0").
		Order("positions.title asc").
		Preload("Role").
		Preload("Level").
		Preload("Technologies").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListAllCount(requesterID string, filter positionapimodels.PositionFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.Position{})
	i.addFilter(tx, requesterID, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества позиций")
		return 0, errors.New("ошибка получения общего количества позиций")
	}
	return rowCount, nil
}

func (i impl) ListAll(requesterID string, filter positionapimodels.PositionFilter) (list []dbmodels.PositionExt, err error) {
	list = []dbmodels.PositionExt{}
	tx := i.db.
		Model(dbmodels.Position{}).
		Select("positions.*, " + applicantsSelect)
	i.addFilter(tx, requesterID, filter)
	i.addSort(tx, filter.Sort)
	page, limit := filter.GetPage()
	i.setPage(tx, page, limit)
	err = tx.
		Preload("Role").
		Preload("Level").
		Preload("Project").
		Preload("Technologies").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListRecommended открытые чужие позиции, у которых есть хотя бы одна технология из technologyIDs
func (i impl) ListRecommended(userID string, technologyIDs []string, limit int) (list []dbmodels.PositionExt, err error) {
	list = []dbmodels.PositionExt{}
	if len(technologyIDs) == 0 {
		return list, nil
	}
	subQuery := i.db.
		Table("positions_technologies_relations").
		Select("position_id").
		Where("technology_id in (?)", technologyIDs)
	err = i.db.
		Model(dbmodels.Position{}).
		Where("positions.user_id <> ?", userID).
		Where("positions.vacancies > 0").
		Where("positions.id in (?)", subQuery).
		Order("positions.created_at desc").
		Limit(limit).
		Preload("Role").
		Preload("Level").
		Preload("Project").
		Preload("Technologies").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id, userID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Position{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) Delete(id, userID string) (bool, error) {
	tx := i.db.
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Delete(&dbmodels.Position{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected != 0, nil
}

// DecrementVacancy уменьшает vacancies на 1 одним условным запросом, ok = false если мест не осталось
func (i impl) DecrementVacancy(id string) (remaining int, ok bool, err error) {
	rows := []struct {
		Vacancies int
	}{}
	err = i.db.
		Raw("UPDATE positions SET vacancies = vacancies - 1, updated_at = now() WHERE id = ? AND vacancies > 0 RETURNING vacancies", id).
		Scan(&rows).
		Error
	if err != nil {
		return 0, false, errors.Wrap(err, "ошибка уменьшения количества мест")
	}
	if len(rows) == 0 {
		return 0, false, nil
	}
	return rows[0].Vacancies, true, nil
}

func (i impl) addFilter(tx *gorm.DB, requesterID string, filter positionapimodels.PositionFilter) {
	tx.Where("positions.user_id <> ?", requesterID).
		Where("positions.vacancies > 0")
	if filter.Search != "" {
		tx.Where("LOWER(positions.title) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if len(filter.Technologies) != 0 {
		subQuery := i.db.
			Table("positions_technologies_relations").
			Select("position_id").
			Where("technology_id in (?)", filter.Technologies)
		switch filter.Match {
		case models.TechnologyMatchAll:
			subQuery = subQuery.
				Group("position_id").
				Having("count(distinct technology_id) = ?", len(filter.Technologies))
		}
		tx.Where("positions.id in (?)", subQuery)
	}
}

func (i impl) addSort(tx *gorm.DB, sort models.PositionSort) {
	tx.Order(sort.OrderClause())
}

func (i impl) setPage(tx *gorm.DB, page, limit int) {
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}
