package dbmodels

import "time"

type User struct {
	BaseModel
	Avatar             string `gorm:"type:varchar(255)"`
	Username           string `gorm:"type:varchar(20);uniqueIndex"`
	Email              string `gorm:"type:varchar(255);uniqueIndex"`
	Password           string `gorm:"type:varchar(255)"`
	GithubURL          string `gorm:"column:githuburl;type:varchar(255)"`
	GitlabURL          string `gorm:"column:gitlaburl;type:varchar(255)"`
	BitbucketURL       string `gorm:"column:bitbucketurl;type:varchar(255)"`
	LinkedinURL        string `gorm:"column:linkedinurl;type:varchar(255)"`
	Bio                string
	ResetCode          *string `gorm:"type:varchar(36);index"`
	ResetCodeExpiresAt *time.Time
	Technologies       []Technology `gorm:"many2many:users_technologies_relations;joinForeignKey:UserID;joinReferences:TechnologyID;constraint:OnDelete:CASCADE"`
	Languages          []Language   `gorm:"many2many:users_languages_relations;joinForeignKey:UserID;joinReferences:LanguageID;constraint:OnDelete:CASCADE"`
}

// BearerToken выданный токен, JWT считается действительным только пока запись существует
type BearerToken struct {
	BaseModel
	Token     string `gorm:"type:text;uniqueIndex"`
	UserID    string `gorm:"type:varchar(36);index"`
	User      *User  `gorm:"constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time
}
