package apperrors

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Kind вид бизнес-ошибки, по нему контроллер выбирает код ответа
type Kind int

const (
	KindStorage Kind = iota // ошибка БД или любая нетипизированная ошибка
	KindValidation
	KindUnauthenticated
	KindNotAuthorized
	KindNotFound
	KindConflict
	KindUnprocessable
	KindNoVacancy
	KindInvalidTechnologySet
)

var kindNames = map[Kind]string{
	KindStorage:              "storage",
	KindValidation:           "validation",
	KindUnauthenticated:      "unauthenticated",
	KindNotAuthorized:        "not_authorized",
	KindNotFound:             "not_found",
	KindConflict:             "conflict",
	KindUnprocessable:        "unprocessable",
	KindNoVacancy:            "no_vacancy",
	KindInvalidTechnologySet: "invalid_technology_set",
}

func (k Kind) String() string {
	return kindNames[k]
}

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) error {
	return New(KindValidation, message)
}

func Unauthenticated(message string) error {
	return New(KindUnauthenticated, message)
}

func NotAuthorized(message string) error {
	return New(KindNotAuthorized, message)
}

func NotFound(message string) error {
	return New(KindNotFound, message)
}

func Conflict(message string) error {
	return New(KindConflict, message)
}

func Unprocessable(message string) error {
	return New(KindUnprocessable, message)
}

func NoVacancy(message string) error {
	return New(KindNoVacancy, message)
}

func InvalidTechnologySet(message string) error {
	return New(KindInvalidTechnologySet, message)
}

// KindOf возвращает вид ошибки, для нетипизированных ошибок KindStorage
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsDuplicate нарушение уникального индекса
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "(SQLSTATE 23505)")
}
