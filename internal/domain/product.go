package domain

import "time"

// Product is a catalog item; price is in whole rupees
type Product struct {
	ID          int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Price       int       `json:"price" form:"price"`
	Image       string    `gorm:"size:1024" json:"image" form:"image"`
	Description string    `gorm:"size:2048" json:"description" form:"description"`
	Sort        int       `json:"sort" form:"sort"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
