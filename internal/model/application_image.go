package model

import "time"

type ImageType string

const (
	ImageTypePlan   ImageType = "plan"
	ImageTypeDesign ImageType = "design"
)

type ApplicationImage struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	ApplicationID uint        `json:"application_id" gorm:"not null;index"`
	Application   Application `json:"-" gorm:"foreignKey:ApplicationID;references:ID"`
	Image         string      `json:"image" gorm:"not null;size:512"`
	OriginalName  string      `json:"original_name" gorm:"size:255"`
	Size          int64       `json:"size" gorm:"not null"`
	ImageType     ImageType   `json:"image_type" gorm:"size:10;not null;default:plan"`
	UploadedAt    time.Time   `json:"uploaded_at" gorm:"autoCreateTime"`
}
