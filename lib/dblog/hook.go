package dblog

import (
	dbmodels "collab-backend/models/db"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Hook пишет предупреждения и ошибки в таблицу logs
type Hook struct {
	db *gorm.DB
}

func NewHook(DB *gorm.DB) *Hook {
	return &Hook{
		// без логгера, иначе ошибка записи снова попадет в хук
		db: DB.Session(&gorm.Session{Logger: logger.Discard}),
	}
}

func (h *Hook) Levels() []log.Level {
	return []log.Level{log.PanicLevel, log.FatalLevel, log.ErrorLevel, log.WarnLevel}
}

func (h *Hook) Fire(entry *log.Entry) error {
	rec := dbmodels.LogRecord{
		Level:         entry.Level.String(),
		Message:       entry.Message,
		Type:          stringField(entry, "type"),
		Method:        stringField(entry, "method"),
		URL:           stringField(entry, "path"),
		UserID:        optionalField(entry, "user_id"),
		ProjectID:     optionalField(entry, "project_id"),
		PositionID:    optionalField(entry, "position_id"),
		ApplicationID: optionalField(entry, "application_id"),
		CreatedAt:     entry.Time,
	}
	if status, ok := entry.Data["status"].(int); ok {
		rec.Status = status
	}
	if err, ok := entry.Data[log.ErrorKey].(error); ok && err != nil {
		rec.Message = fmt.Sprintf("%v: %v", rec.Message, err.Error())
	}
	return h.db.Create(&rec).Error
}

func stringField(entry *log.Entry, key string) string {
	value, ok := entry.Data[key]
	if !ok || value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprint(value)
}

func optionalField(entry *log.Entry, key string) *string {
	value := stringField(entry, key)
	if value == "" {
		return nil
	}
	return &value
}
