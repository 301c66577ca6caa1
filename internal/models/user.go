package models

import "time"

// User is an account that can hold a session
type User struct {
	ID         uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username   string     `json:"username" gorm:"size:255;not null;uniqueIndex"`
	Password   string     `json:"-" gorm:"size:255;not null"`
	Role       string     `json:"role" gorm:"size:64;not null;default:guest"`
	LastLogin  *time.Time `json:"last_login"`
	DateJoined time.Time  `json:"date_joined" gorm:"not null"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
