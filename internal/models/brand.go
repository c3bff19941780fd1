package models

type Brand struct {
	BaseModel
	UserID      string        `gorm:"type:varchar(36);uniqueIndex;not null" json:"userId"`
	User        *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CompanyName string        `gorm:"not null" json:"companyName"`
	Website     string        `gorm:"not null" json:"website"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Industry    string        `json:"industry,omitempty"`
	Logo        string        `json:"logo,omitempty"`
	Status      ProfileStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}
