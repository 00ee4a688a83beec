package model

import (
	"strings"
	"time"
)

type ApplicationStatus string

const (
	StatusNew        ApplicationStatus = "new"
	StatusInProgress ApplicationStatus = "in_progress"
	StatusCompleted  ApplicationStatus = "completed"
)

// ApplicationStatuses 按展示顺序列出全部状态。
var ApplicationStatuses = []ApplicationStatus{StatusNew, StatusInProgress, StatusCompleted}

// ParseApplicationStatus 校验并转换外部传入的状态值。
func ParseApplicationStatus(raw string) (ApplicationStatus, bool) {
	s := ApplicationStatus(strings.TrimSpace(raw))
	for _, known := range ApplicationStatuses {
		if s == known {
			return s, true
		}
	}
	return "", false
}

type Application struct {
	ID           uint               `json:"id" gorm:"primaryKey"`
	UserID       uint               `json:"user_id" gorm:"not null;index"`
	User         User               `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Title        string             `json:"title" gorm:"not null;size:200"`
	Description  string             `json:"description" gorm:"type:text;not null"`
	CategoryID   uint               `json:"category_id" gorm:"not null;index"`
	Category     Category           `json:"-" gorm:"foreignKey:CategoryID;references:ID"`
	Status       ApplicationStatus  `json:"status" gorm:"size:20;not null;default:new;index"`
	CreatedAt    time.Time          `json:"created_at" gorm:"index"`
	AdminComment *string            `json:"admin_comment" gorm:"type:text"`
	Images       []ApplicationImage `json:"images,omitempty" gorm:"foreignKey:ApplicationID"`
}

// CanBeDeleted 仅新建状态的申请允许申请人删除。
func (a *Application) CanBeDeleted() bool {
	return a.Status == StatusNew
}

// CanChangeStatus 状态只能从新建状态变更一次。
func (a *Application) CanChangeStatus() bool {
	return a.Status == StatusNew
}
