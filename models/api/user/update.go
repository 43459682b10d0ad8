package userapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

type UpdateDetailsRequest struct {
	Bio          string   `json:"bio"`
	GithubURL    string   `json:"github_url"`
	GitlabURL    string   `json:"gitlab_url"`
	BitbucketURL string   `json:"bitbucket_url"`
	LinkedinURL  string   `json:"linkedin_url"`
	Technologies []string `json:"technologies"`
	Languages    []string `json:"languages"`
}

func (r UpdateDetailsRequest) Validate() error {
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

type UpdateUsernameRequest struct {
	Username string `json:"username"`
}

func (r UpdateUsernameRequest) Validate() error {
	return ValidateUsername(strings.TrimSpace(r.Username))
}

type UpdateEmailRequest struct {
	Email string `json:"email"`
}

func (r UpdateEmailRequest) Validate() error {
	return ValidateEmail(strings.TrimSpace(r.Email))
}

type UpdatePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r UpdatePasswordRequest) Validate() error {
	if r.OldPassword == "" {
		return errors.New("не указан текущий пароль")
	}
	return ValidateNewPassword(r.Password, r.ConfirmPassword)
}
