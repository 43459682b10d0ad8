package projectapimodels

import (
	apimodels "collab-backend/models/api"
	dictapimodels "collab-backend/models/api/dict"
	dbmodels "collab-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	nameMinLength        = 3
	nameMaxLength        = 255
	descriptionMinLength = 10
	descriptionMaxLength = 65535
	urlMinLength         = 4
	urlMaxLength         = 255
)

type ProjectData struct {
	Name         string   `json:"name"`         // название проекта
	Description  string   `json:"description"`  // описание
	Mission      string   `json:"mission"`      // миссия
	ProjectURL   string   `json:"project_url"`  // ссылка на проект
	Technologies []string `json:"technologies"` // ид технологий проекта
}

func (p ProjectData) Validate() error {
	name := []rune(strings.TrimSpace(p.Name))
	if len(name) < nameMinLength || len(name) > nameMaxLength {
		return errors.New("название проекта должно быть от 3 до 255 символов")
	}
	description := []rune(strings.TrimSpace(p.Description))
	if len(description) < descriptionMinLength || len(description) > descriptionMaxLength {
		return errors.New("описание проекта должно быть от 10 до 65535 символов")
	}
	if len(p.Mission) > descriptionMaxLength {
		return errors.New("миссия проекта слишком длинная")
	}
	if p.ProjectURL != "" && (len(p.ProjectURL) < urlMinLength || len(p.ProjectURL) > urlMaxLength) {
		return errors.New("ссылка на проект должна быть от 4 до 255 символов")
	}
	if len(p.Technologies) == 0 {
		return errors.New("не выбраны технологии проекта")
	}
	return nil
}

type ProjectFilter struct {
	apimodels.Pagination
	Search   string `query:"search"`    // поиск по названию
	OnlyOpen bool   `query:"only_open"` // только проекты с открытыми позициями
}

type CollaboratorView struct {
	UserID   string `json:"user_id"`
	Avatar   string `json:"avatar"`
	Username string `json:"username"`
	Position string `json:"position"` // название позиции на момент принятия
}

type ProjectView struct {
	ProjectData
	ID            string                   `json:"id"`
	OwnerID       string                   `json:"owner_id"`
	OwnerUsername string                   `json:"owner_username"`
	HasPositions  bool                     `json:"has_positions"`
	OpenPositions int64                    `json:"open_positions"`
	Technologies  []dictapimodels.DictView `json:"technologies"`
	Collaborators []CollaboratorView       `json:"collaborators"`
	CreationDate  time.Time                `json:"creation_date"`
}

func ProjectConvert(rec dbmodels.ProjectExt) ProjectView {
	result := ProjectView{
		ProjectData: ProjectData{
			Name:        rec.Name,
			Description: rec.Description,
			Mission:     rec.Mission,
			ProjectURL:  rec.ProjectURL,
		},
		ID:            rec.ID,
		OwnerID:       rec.OwnerID,
		HasPositions:  rec.HasPositions,
		OpenPositions: rec.OpenPositions,
		Technologies:  make([]dictapimodels.DictView, 0, len(rec.Technologies)),
		Collaborators: make([]CollaboratorView, 0, len(rec.Collaborators)),
		CreationDate:  rec.CreatedAt,
	}
	if rec.Owner != nil {
		result.OwnerUsername = rec.Owner.Username
	}
	for _, item := range rec.Technologies {
		result.Technologies = append(result.Technologies, dictapimodels.DictConvert(item.DictModel))
	}
	for _, item := range rec.Collaborators {
		view := CollaboratorView{
			UserID:   item.UserID,
			Position: item.Position,
		}
		if item.User != nil {
			view.Avatar = item.User.Avatar
			view.Username = item.User.Username
		}
		result.Collaborators = append(result.Collaborators, view)
	}
	return result
}

// ProjectsByUser проекты пользователя: свои и те, где он участник
type ProjectsByUser struct {
	Owned          []ProjectView `json:"owned"`
	Collaborations []ProjectView `json:"collaborations"`
}

type CollaboratorRequest struct {
	ProjectID string `json:"project_id"`
	UserID    string `json:"user_id"` // не используется при выходе из проекта
}

func (r CollaboratorRequest) Validate(withUser bool) error {
	if r.ProjectID == "" {
		return errors.New("не указан проект")
	}
	if withUser && r.UserID == "" {
		return errors.New("не указан участник")
	}
	return nil
}
