package dictapimodels

import (
	"collab-backend/models"
	dbmodels "collab-backend/models/db"
	"strings"

	"github.com/pkg/errors"
)

type DictView struct {
	ID     string            `json:"id"`
	Label  string            `json:"label"`
	Value  string            `json:"value"`
	Status models.DictStatus `json:"status"`
}

func DictConvert(rec dbmodels.DictModel) DictView {
	return DictView{
		ID:     rec.ID,
		Label:  rec.Label,
		Value:  rec.Value,
		Status: rec.Status,
	}
}

// TechnologyRequest предложение новой технологии
type TechnologyRequest struct {
	Label string `json:"label"`
}

func (r TechnologyRequest) Validate() error {
	label := strings.TrimSpace(r.Label)
	if len(label) < 1 || len(label) > 255 {
		return errors.New("название технологии должно быть от 1 до 255 символов")
	}
	return nil
}

// ToValue значение технологии из названия
func (r TechnologyRequest) ToValue() string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(r.Label)), " ", "-")
}
