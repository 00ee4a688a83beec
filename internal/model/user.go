package model

import "time"

type User struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"-"`
	Username     string        `json:"username" gorm:"unique;not null;size:150"`
	FullName     string        `json:"full_name" gorm:"not null;size:100"`
	Email        string        `json:"email" gorm:"unique;index;size:255"`
	Password     string        `json:"-" gorm:"not null"`
	Staff        bool          `json:"staff" gorm:"not null;default:false"`
	Applications []Application `json:"-"`
}
