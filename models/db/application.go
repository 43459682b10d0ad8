package dbmodels

import (
	"collab-backend/models"
	"time"
)

type Application struct {
	BaseModel
	UserID     string                   `gorm:"type:varchar(36);uniqueIndex:idx_application_user_position"`
	User       *User                    `gorm:"constraint:OnDelete:CASCADE"`
	PositionID string                   `gorm:"type:varchar(36);uniqueIndex:idx_application_user_position"`
	Position   *Position                `gorm:"constraint:OnDelete:CASCADE"`
	Status     models.ApplicationStatus `gorm:"type:varchar(20);default:pending;index"`
}

func (Application) TableName() string {
	return "positions_applications_relations"
}

// ApplicantExt отклик вместе с профилем кандидата
type ApplicantExt struct {
	ApplicationID string
	PositionID    string
	PositionTitle string
	UserID        string
	Avatar        string
	Username      string
	Bio           string
	GithubURL     string `gorm:"column:githuburl"`
	GitlabURL     string `gorm:"column:gitlaburl"`
	BitbucketURL  string `gorm:"column:bitbucketurl"`
	LinkedinURL   string `gorm:"column:linkedinurl"`
	Status        models.ApplicationStatus
	CreatedAt     time.Time
}
