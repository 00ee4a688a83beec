package model

import "time"

type Category struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	Name         string        `json:"name" gorm:"not null;size:200"`
	CreatedAt    time.Time     `json:"created_at"`
	Applications []Application `json:"-"`
}

// CategoryWithCount 管理端列表使用，附带关联申请数量。
type CategoryWithCount struct {
	Category
	ApplicationsCount int64 `json:"applications_count"`
}
