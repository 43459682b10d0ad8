package positionapimodels

import (
	"collab-backend/models"
	apimodels "collab-backend/models/api"
	dictapimodels "collab-backend/models/api/dict"
	dbmodels "collab-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	titleMinLength       = 3
	titleMaxLength       = 255
	descriptionMinLength = 10
	descriptionMaxLength = 65535
	vacanciesMin         = 1
	vacanciesMax         = 100
)

type PositionData struct {
	ProjectID      string   `json:"project_id"`     // ид проекта
	Title          string   `json:"title"`          // название позиции
	Description    string   `json:"description"`    // описание
	Qualifications string   `json:"qualifications"` // требования к кандидату
	Duties         string   `json:"duties"`         // обязанности
	RoleID         string   `json:"role_id"`        // ид роли
	LevelID        string   `json:"level_id"`       // ид уровня
	Vacancies      int      `json:"vacancies"`      // кол-во свободных мест
	Technologies   []string `json:"technologies"`   // ид технологий, подмножество технологий проекта
}

func (p PositionData) Validate() error {
	if p.ProjectID == "" {
		return errors.New("не указан проект")
	}
	title := []rune(strings.TrimSpace(p.Title))
	if len(title) < titleMinLength || len(title) > titleMaxLength {
		return errors.New("название позиции должно быть от 3 до 255 символов")
	}
	description := []rune(strings.TrimSpace(p.Description))
	if len(description) < descriptionMinLength || len(description) > descriptionMaxLength {
		return errors.New("описание позиции должно быть от 10 до 65535 символов")
	}
	if len(p.Qualifications) > descriptionMaxLength {
		return errors.New("требования слишком длинные")
	}
	if len(p.Duties) > descriptionMaxLength {
		return errors.New("обязанности слишком длинные")
	}
	if p.Vacancies < vacanciesMin || p.Vacancies > vacanciesMax {
		return errors.New("количество мест должно быть от 1 до 100")
	}
	if p.RoleID == "" {
		return errors.New("не указана роль")
	}
	if p.LevelID == "" {
		return errors.New("не указан уровень")
	}
	if len(p.Technologies) == 0 {
		return errors.New("не выбраны технологии позиции")
	}
	return nil
}

type PositionFilter struct {
	apimodels.Pagination
	Search       string                 `query:"search"`       // поиск по названию без учета регистра
	Technologies []string               `query:"technologies"` // ид технологий
	Match        models.TechnologyMatch `query:"match"`        // any или all
	Sort         models.PositionSort    `query:"sort"`         // nameasc, namedesc, dateasc, datedesc
}

// Validate проверяет значения перечислений и проставляет значения по умолчанию
func (f *PositionFilter) Validate() error {
	if err := f.Pagination.Validate(); err != nil {
		return err
	}
	if f.Match == "" {
		f.Match = models.TechnologyMatchAny
	}
	if !f.Match.IsValid() {
		return errors.New("недопустимый способ сопоставления технологий")
	}
	if f.Sort == "" {
		f.Sort = models.PositionSortDateDesc
	}
	if !f.Sort.IsValid() {
		return errors.New("недопустимый вариант сортировки")
	}
	return nil
}

type PositionView struct {
	ID             string                   `json:"id"`
	ProjectID      string                   `json:"project_id"`
	ProjectName    string                   `json:"project_name,omitempty"`
	UserID         string                   `json:"user_id"`
	Title          string                   `json:"title"`
	Description    string                   `json:"description"`
	Qualifications string                   `json:"qualifications"`
	Duties         string                   `json:"duties"`
	Vacancies      int                      `json:"vacancies"`
	Role           dictapimodels.DictView   `json:"role"`
	Level          dictapimodels.DictView   `json:"level"`
	Technologies   []dictapimodels.DictView `json:"technologies"`
	Applicants     int64                    `json:"applicants"` // откликов в ожидании
	CreationDate   time.Time                `json:"creation_date"`
}

func PositionConvert(rec dbmodels.PositionExt) PositionView {
	result := PositionView{
		ID:             rec.ID,
		ProjectID:      rec.ProjectID,
		UserID:         rec.UserID,
		Title:          rec.Title,
		Description:    rec.Description,
		Qualifications: rec.Qualifications,
		Duties:         rec.Duties,
		Vacancies:      rec.Vacancies,
		Role:           dictapimodels.DictView{ID: rec.RoleID},
		Level:          dictapimodels.DictView{ID: rec.LevelID},
		Technologies:   make([]dictapimodels.DictView, 0, len(rec.Technologies)),
		Applicants:     rec.Applicants,
		CreationDate:   rec.CreatedAt,
	}
	if rec.Role != nil {
		result.Role = dictapimodels.DictConvert(rec.Role.DictModel)
	}
	if rec.Level != nil {
		result.Level = dictapimodels.DictConvert(rec.Level.DictModel)
	}
	if rec.Project != nil {
		result.ProjectName = rec.Project.Name
	}
	for _, item := range rec.Technologies {
		result.Technologies = append(result.Technologies, dictapimodels.DictConvert(item.DictModel))
	}
	return result
}
