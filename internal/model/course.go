package model

// swagger:model Course
type Course struct {
	UUIDBase
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Language     string         `gorm:"size:50" json:"language"`
	CategoryID   string         `gorm:"type:varchar(36);not null;index" json:"category"`
	InstructorID string         `gorm:"type:varchar(36);index" json:"instructor"`
	ThumbnailURL string         `gorm:"size:500" json:"thumbnailUrl"`
	IsPublished  bool           `gorm:"default:false" json:"isPublished"`
	Lessons      []CourseLesson `gorm:"foreignKey:CourseID" json:"lessons"`
}

func (Course) TableName() string {
	return "courses"
}

type CourseLesson struct {
	UUIDBase
	CourseID    string `gorm:"type:varchar(36);not null;index" json:"course"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Content     string `gorm:"type:text" json:"content"`
	VideoURL    string `gorm:"size:500" json:"videoUrl,omitempty"`
	DocumentURL string `gorm:"size:500" json:"documentUrl,omitempty"`
	Order       int    `gorm:"column:position;default:0" json:"order"`
}

func (CourseLesson) TableName() string {
	return "course_lessons"
}
