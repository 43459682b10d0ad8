package dbmodels

import (
	"collab-backend/models"
	"time"
)

type BaseModel struct {
	ID        string    `gorm:"primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DictModel общая часть справочников (технологии, языки, роли, уровни)
type DictModel struct {
	BaseModel
	Label  string            `gorm:"type:varchar(255);uniqueIndex"`
	Value  string            `gorm:"type:varchar(255)"`
	Status models.DictStatus `gorm:"type:varchar(20);default:accepted;index"`
}
