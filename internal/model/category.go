package model

// swagger:model Category
type Category struct {
	UUIDBase
	CategoryName string   `gorm:"size:100;not null;uniqueIndex" json:"categoryName"`
	Description  string   `gorm:"type:text" json:"description"`
	Language     Language `gorm:"size:3;not null;default:'KIN';index" json:"language"`
}

func (Category) TableName() string {
	return "categories"
}
