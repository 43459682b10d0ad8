package userapimodels

import (
	"regexp"
	"unicode"

	"github.com/pkg/errors"
)

var emailRegex = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`)

const (
	usernameMinLength = 3
	usernameMaxLength = 20
	passwordMinLength = 8
	passwordMaxLength = 128
	bioMaxLength      = 65535
)

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return errors.New("почта имеет неправильный формат")
	}
	return nil
}

func ValidateUsername(username string) error {
	length := len([]rune(username))
	if length < usernameMinLength {
		return errors.New("имя пользователя слишком короткое")
	}
	if length > usernameMaxLength {
		return errors.New("имя пользователя слишком длинное")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < passwordMinLength {
		return errors.New("пароль слишком короткий")
	}
	if len(password) > passwordMaxLength {
		return errors.New("пароль слишком длинный")
	}
	hasLetter, hasDigit := false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("пароль должен содержать хотя бы одну букву и одну цифру")
	}
	return nil
}

// ValidateNewPassword пароль и его подтверждение
func ValidateNewPassword(password, confirmPassword string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if password != confirmPassword {
		return errors.New("пароли не совпадают")
	}
	return nil
}
