package domain

import (
	"database/sql/driver"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// statusNext enumerates the allowed forward transitions. Delivered and
// cancelled are terminal.
var statusNext = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusDelivered, OrderStatusCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return len(statusNext[s]) == 0 && s.Valid()
}

// CanTransition reports whether an order may move from status s to status to.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, n := range statusNext[s] {
		if n == to {
			return true
		}
	}
	return false
}

// CustomerInfo is stored as a JSON column on orders
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (i CustomerInfo) Value() (driver.Value, error) {
	return jsoniter.MarshalToString(i)
}

func (i *CustomerInfo) Scan(value interface{}) error {
	return scanJSON(value, i)
}

// OrderItem is a line item snapshot taken at checkout time; price is in
// whole rupees.
type OrderItem struct {
	ID       int64  `json:"id,string"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image,omitempty"`
}

type OrderItems []OrderItem

func (o OrderItems) Value() (driver.Value, error) {
	return jsoniter.MarshalToString(o)
}

func (o *OrderItems) Scan(value interface{}) error {
	return scanJSON(value, o)
}

type Order struct {
	ID            string       `gorm:"primaryKey;size:40" json:"id" form:"id"`
	CustomerInfo  CustomerInfo `gorm:"type:jsonb" json:"customer_info" form:"customer_info"`
	Items         OrderItems   `gorm:"type:jsonb" json:"items" form:"items"`
	Total         int          `json:"total" form:"total"`
	PaymentMethod string       `gorm:"size:64" json:"payment_method" form:"payment_method"`
	Status        OrderStatus  `gorm:"size:16;index" json:"status" form:"status"`
	CreatedAt     time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return jsoniter.Unmarshal(v, dest)
	case string:
		return jsoniter.UnmarshalFromString(v, dest)
	default:
		return errors.Errorf("unsupported column type %T", value)
	}
}
