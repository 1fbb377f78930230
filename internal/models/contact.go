package models

import "time"

// Contact is one inbound contact-form submission. Write-once.
type Contact struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required"`
	Email     string    `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	Subject   string    `json:"subject" gorm:"type:varchar(200)" validate:"required"`
	Message   string    `json:"message" gorm:"type:text" validate:"required"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
