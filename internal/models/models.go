package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null"          json:"email"`
	Mobile       string `gorm:"unique;not null"          json:"mobile"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type MenuItem struct {
	ID    uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string  `gorm:"unique;not null"          json:"name"`
	Price float64 `gorm:"not null"                 json:"price"`
}

// Order carries a denormalized snapshot of the selected items and the total
// computed at placement time. Menu edits and deletions never touch it.
type Order struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerEmail string    `gorm:"index;not null"           json:"customer_email"`
	ItemsJSON     string    `gorm:"not null"                 json:"items_json"`
	TotalPrice    float64   `gorm:"not null"                 json:"total_price"`
	Status        string    `gorm:"not null"                 json:"status"`
	CreatedAt     time.Time `gorm:"not null"                 json:"created_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"          json:"id"`
	Token     string `gorm:"unique;not null"     json:"token"`
	UserID    uint   `gorm:"index;not null"      json:"user_id"`
	ExpiresAt int64  `gorm:"not null"            json:"expires_at"`
	Revoked   bool   `gorm:"default:false"       json:"revoked"`
}
