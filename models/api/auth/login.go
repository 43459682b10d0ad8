package authapimodels

import (
	userapimodels "collab-backend/models/api/user"
	"strings"

	"github.com/pkg/errors"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if err := userapimodels.ValidateEmail(strings.TrimSpace(r.Email)); err != nil {
		return err
	}
	if r.Password == "" {
		return errors.New("не указан пароль")
	}
	return nil
}

type PasswordRecovery struct {
	Email string `json:"email"` // почта для отправки письма со ссылкой на сброс
}

func (r PasswordRecovery) Validate() error {
	return userapimodels.ValidateEmail(strings.TrimSpace(r.Email))
}

type PasswordResetRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r PasswordResetRequest) Validate() error {
	return userapimodels.ValidateNewPassword(r.Password, r.ConfirmPassword)
}
