package domain

import "time"

// Message is a contact-form submission
type Message struct {
	ID        int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Name      string    `json:"name" form:"name"`
	Email     string    `gorm:"index" json:"email" form:"email"`
	Phone     string    `json:"phone" form:"phone"`
	Subject   string    `gorm:"size:256" json:"subject" form:"subject"`
	Message   string    `gorm:"size:4096" json:"message" form:"message"`
	Read      bool      `json:"read" form:"read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

// Subscriber is a newsletter signup; email carries a unique index so a
// repeated subscribe surfaces as a duplicate-key error.
type Subscriber struct {
	ID        int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Email     string    `gorm:"uniqueIndex;size:256" json:"email" form:"email"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}
