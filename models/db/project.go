package dbmodels

type Project struct {
	BaseModel
	Name          string `gorm:"type:varchar(255)"`
	Description   string
	Mission       string
	ProjectURL    string         `gorm:"column:project_url;type:varchar(255)"`
	HasPositions  bool           `gorm:"column:has_positions;default:false"`
	OwnerID       string         `gorm:"type:varchar(36);index"`
	Owner         *User          `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Technologies  []Technology   `gorm:"many2many:projects_technologies_relations;joinForeignKey:ProjectID;joinReferences:TechnologyID;constraint:OnDelete:CASCADE"`
	Collaborators []Collaborator `gorm:"foreignKey:ProjectID"`
}

type ProjectExt struct {
	Project
	OpenPositions int64 `gorm:"column:open_positions"`
}

// Collaborator участник проекта, появляется только при принятии отклика.
// Position хранит название позиции на момент принятия и не связан с позицией.
type Collaborator struct {
	BaseModel
	UserID    string   `gorm:"type:varchar(36);uniqueIndex:idx_collaborator_user_project"`
	User      *User    `gorm:"constraint:OnDelete:CASCADE"`
	ProjectID string   `gorm:"type:varchar(36);uniqueIndex:idx_collaborator_user_project"`
	Project   *Project `gorm:"constraint:OnDelete:CASCADE"`
	Position  string   `gorm:"type:varchar(255)"`
}
