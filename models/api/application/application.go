package applicationapimodels

import (
	"collab-backend/models"
	dbmodels "collab-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

type ApplyRequest struct {
	PositionID string `json:"position_id"`
}

func (r ApplyRequest) Validate() error {
	if r.PositionID == "" {
		return errors.New("не указана позиция")
	}
	return nil
}

// ResolveRequest принятие или отклонение отклика владельцем позиции
type ResolveRequest struct {
	PositionID  string `json:"position_id"`
	ApplicantID string `json:"applicant_id"`
}

func (r ResolveRequest) Validate() error {
	if r.PositionID == "" {
		return errors.New("не указана позиция")
	}
	if r.ApplicantID == "" {
		return errors.New("не указан кандидат")
	}
	return nil
}

// ParseStatus статус фильтра откликов, по умолчанию pending
func ParseStatus(value string) (models.ApplicationStatus, error) {
	if value == "" {
		return models.ApplicationStatusPending, nil
	}
	status := models.ApplicationStatus(value)
	if !status.IsValid() {
		return "", errors.New("недопустимый статус отклика")
	}
	return status, nil
}

type ApplicationView struct {
	ID         string                   `json:"id"`
	UserID     string                   `json:"user_id"`
	PositionID string                   `json:"position_id"`
	Status     models.ApplicationStatus `json:"status"`
	CreatedAt  time.Time                `json:"created_at"`
}

func ApplicationConvert(rec dbmodels.Application) ApplicationView {
	return ApplicationView{
		ID:         rec.ID,
		UserID:     rec.UserID,
		PositionID: rec.PositionID,
		Status:     rec.Status,
		CreatedAt:  rec.CreatedAt,
	}
}

type ApplicantView struct {
	ApplicationID string                   `json:"application_id"`
	PositionID    string                   `json:"position_id"`
	PositionTitle string                   `json:"position_title"`
	UserID        string                   `json:"user_id"`
	Avatar        string                   `json:"avatar"`
	Username      string                   `json:"username"`
	Bio           string                   `json:"bio"`
	GithubURL     string                   `json:"github_url"`
	GitlabURL     string                   `json:"gitlab_url"`
	BitbucketURL  string                   `json:"bitbucket_url"`
	LinkedinURL   string                   `json:"linkedin_url"`
	Status        models.ApplicationStatus `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
}

func ApplicantConvert(rec dbmodels.ApplicantExt) ApplicantView {
	return ApplicantView{
		ApplicationID: rec.ApplicationID,
		PositionID:    rec.PositionID,
		PositionTitle: rec.PositionTitle,
		UserID:        rec.UserID,
		Avatar:        rec.Avatar,
		Username:      rec.Username,
		Bio:           rec.Bio,
		GithubURL:     rec.GithubURL,
		GitlabURL:     rec.GitlabURL,
		BitbucketURL:  rec.BitbucketURL,
		LinkedinURL:   rec.LinkedinURL,
		Status:        rec.Status,
		CreatedAt:     rec.CreatedAt,
	}
}
