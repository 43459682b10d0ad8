package feedapimodels

import (
	applicationapimodels "collab-backend/models/api/application"
	positionapimodels "collab-backend/models/api/position"
	projectapimodels "collab-backend/models/api/project"
)

type Feed struct {
	Projects     []projectapimodels.ProjectView       `json:"projects"`     // последние проекты
	Positions    []positionapimodels.PositionView     `json:"positions"`    // открытые позиции по технологиям пользователя
	Applications []applicationapimodels.ApplicantView `json:"applications"` // отклики в ожидании на позиции пользователя
}
