package userapimodels

import (
	dictapimodels "collab-backend/models/api/dict"
	dbmodels "collab-backend/models/db"
	"time"
)

type UserView struct {
	ID           string                   `json:"id"`
	Avatar       string                   `json:"avatar"`
	Username     string                   `json:"username"`
	Email        string                   `json:"email,omitempty"`
	GithubURL    string                   `json:"github_url"`
	GitlabURL    string                   `json:"gitlab_url"`
	BitbucketURL string                   `json:"bitbucket_url"`
	LinkedinURL  string                   `json:"linkedin_url"`
	Bio          string                   `json:"bio"`
	Technologies []dictapimodels.DictView `json:"technologies"`
	Languages    []dictapimodels.DictView `json:"languages"`
	CreatedAt    time.Time                `json:"created_at"`
}

func UserConvert(rec dbmodels.User) UserView {
	result := UserView{
		ID:           rec.ID,
		Avatar:       rec.Avatar,
		Username:     rec.Username,
		Email:        rec.Email,
		GithubURL:    rec.GithubURL,
		GitlabURL:    rec.GitlabURL,
		BitbucketURL: rec.BitbucketURL,
		LinkedinURL:  rec.LinkedinURL,
		Bio:          rec.Bio,
		Technologies: make([]dictapimodels.DictView, 0, len(rec.Technologies)),
		Languages:    make([]dictapimodels.DictView, 0, len(rec.Languages)),
		CreatedAt:    rec.CreatedAt,
	}
	for _, item := range rec.Technologies {
		result.Technologies = append(result.Technologies, dictapimodels.DictConvert(item.DictModel))
	}
	for _, item := range rec.Languages {
		result.Languages = append(result.Languages, dictapimodels.DictConvert(item.DictModel))
	}
	return result
}

// ProjectRef краткие данные проекта в профиле
type ProjectRef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	HasPositions bool   `json:"has_positions"`
	Position     string `json:"position,omitempty"` // для участия: позиция, на которую приняли
}

type ProfileView struct {
	UserView
	Projects       []ProjectRef `json:"projects"`
	Collaborations []ProjectRef `json:"collaborations"`
}
