package dbmodels

import "time"

// LogRecord запись журнала событий в БД
type LogRecord struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	Level         string `gorm:"type:varchar(10);index"`
	Message       string
	Type          string `gorm:"type:varchar(50)"`
	Method        string `gorm:"type:varchar(10)"`
	URL           string `gorm:"type:varchar(255)"`
	Status        int
	UserID        *string   `gorm:"type:varchar(36)"`
	ProjectID     *string   `gorm:"type:varchar(36)"`
	PositionID    *string   `gorm:"type:varchar(36)"`
	ApplicationID *string   `gorm:"type:varchar(36)"`
	CreatedAt     time.Time `gorm:"index"`
}

func (LogRecord) TableName() string {
	return "logs"
}
