package userapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

type RegisterRequest struct {
	Email           string   `json:"email"`
	Username        string   `json:"username"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	Bio             string   `json:"bio"`
	GithubURL       string   `json:"github_url"` // имя пользователя, ссылка строится на сервере
	GitlabURL       string   `json:"gitlab_url"`
	BitbucketURL    string   `json:"bitbucket_url"`
	LinkedinURL     string   `json:"linkedin_url"`
	Technologies    []string `json:"technologies"`
	Languages       []string `json:"languages"`
}

func (r RegisterRequest) Validate() error {
	if err := ValidateEmail(strings.TrimSpace(r.Email)); err != nil {
		return err
	}
	if err := ValidateUsername(strings.TrimSpace(r.Username)); err != nil {
		return err
	}
	if err := ValidateNewPassword(r.Password, r.ConfirmPassword); err != nil {
		return err
	}
	if len(r.Bio) > bioMaxLength {
		return errors.New("описание слишком длинное")
	}
	if len(r.Technologies) == 0 {
		return errors.New("не выбраны технологии")
	}
	if len(r.Languages) == 0 {
		return errors.New("не выбраны языки")
	}
	return nil
}
