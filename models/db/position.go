package dbmodels

type Position struct {
	BaseModel
	Title          string `gorm:"type:varchar(255)"`
	Description    string
	Qualifications string
	Duties         string
	Vacancies      int          `gorm:"not null;default:1;check:chk_positions_vacancies,vacancies >= 0"`
	RoleID         string       `gorm:"type:varchar(36)"`
	Role           *Role        `gorm:"foreignKey:RoleID"`
	LevelID        string       `gorm:"type:varchar(36)"`
	Level          *Level       `gorm:"foreignKey:LevelID"`
	ProjectID      string       `gorm:"type:varchar(36);index"`
	Project        *Project     `gorm:"constraint:OnDelete:CASCADE"`
	UserID         string       `gorm:"type:varchar(36);index"`
	User           *User        `gorm:"constraint:OnDelete:CASCADE"`
	Technologies   []Technology `gorm:"many2many:positions_technologies_relations;joinForeignKey:PositionID;joinReferences:TechnologyID;constraint:OnDelete:CASCADE"`
}

type PositionExt struct {
	Position
	Applicants int64 `gorm:"column:applicants"` // откликов в статусе pending
}
