package models

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusDeclined ApplicationStatus = "declined"
)

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusDeclined:
		return true
	}
	return false
}

// DictStatus статус записи справочника
type DictStatus string

const (
	DictStatusAccepted DictStatus = "accepted"
	DictStatusPending  DictStatus = "pending" // предложена пользователем, ждет подтверждения
)
