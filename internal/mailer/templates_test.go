package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lahorisamosa/lahorisamosa/internal/domain"
)

func TestRenderOrderConfirmation(t *testing.T) {
	msg, err := RenderOrderConfirmation(OrderEmail{
		OrderID: "LAHORIABC123",
		Customer: domain.CustomerInfo{
			Name: "Ali Raza", Email: "ali@example.com", Address: "DHA Phase 5, Lahore",
		},
		Items: domain.OrderItems{
			{ID: 1, Name: "Pizza Samosa (12p)", Price: 650, Quantity: 2},
			{ID: 5, Name: "Potato Samosa (12p)", Price: 300, Quantity: 1},
		},
		Subtotal:      1600,
		DeliveryFee:   100,
		Total:         1700,
		PaymentMethod: "Cash on Delivery",
		Currency:      "Rs.",
		StoreName:     "Lahori Samosa",
		WhatsappURL:   "https://wa.me/923244060113",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ali@example.com"}, msg.To)
	assert.Equal(t, "✅ Order Confirmed: #LAHORIABC123", msg.Subject)
	assert.Contains(t, msg.HTMLContent, "Ali Raza")
	assert.Contains(t, msg.HTMLContent, "#LAHORIABC123")
	assert.Contains(t, msg.HTMLContent, "Pizza Samosa (12p)")
	assert.Contains(t, msg.HTMLContent, "x2")
	assert.Contains(t, msg.HTMLContent, "Rs.1300") // 650 x 2 line total
	assert.Contains(t, msg.HTMLContent, "Rs.1700")
	assert.Contains(t, msg.HTMLContent, "Cash on Delivery")
	assert.Contains(t, msg.HTMLContent, "DHA Phase 5, Lahore")
	assert.NotContains(t, msg.HTMLContent, "Discount")
}

func TestRenderOrderConfirmationWithDiscount(t *testing.T) {
	msg, err := RenderOrderConfirmation(OrderEmail{
		OrderID:       "LAHORIXYZ",
		Customer:      domain.CustomerInfo{Name: "Sara", Email: "sara@example.com"},
		Items:         domain.OrderItems{{ID: 2, Name: "Bar.B.Q Samosa (12p)", Price: 600, Quantity: 1}},
		Subtotal:      600,
		DeliveryFee:   100,
		Discount:      70,
		Total:         630,
		PaymentMethod: "JazzCash Transfer",
		Currency:      "Rs.",
	})
	require.NoError(t, err)
	assert.Contains(t, msg.HTMLContent, "Discount")
	assert.Contains(t, msg.HTMLContent, "-Rs.70")
}

func TestRenderStatusEmail(t *testing.T) {
	order := &domain.Order{
		ID:           "LAHORI42",
		CustomerInfo: domain.CustomerInfo{Name: "Ali", Email: "ali@example.com"},
		Total:        750,
	}

	msg, err := RenderStatusEmail(order, domain.OrderStatusConfirmed, "Rs.")
	require.NoError(t, err)
	assert.Equal(t, "✅ Order Confirmed: #LAHORI42", msg.Subject)
	assert.Contains(t, msg.HTMLContent, "has been confirmed")
	assert.Contains(t, msg.HTMLContent, "Rs.750")
	assert.NotContains(t, msg.HTMLContent, "ZgotmplZ")

	msg, err = RenderStatusEmail(order, domain.OrderStatusDelivered, "Rs.")
	require.NoError(t, err)
	assert.Equal(t, "📦 Order Delivered: #LAHORI42", msg.Subject)

	msg, err = RenderStatusEmail(order, domain.OrderStatusCancelled, "Rs.")
	require.NoError(t, err)
	assert.Equal(t, "❌ Order Cancelled: #LAHORI42", msg.Subject)

	// pending carries no notification
	msg, err = RenderStatusEmail(order, domain.OrderStatusPending, "Rs.")
	require.NoError(t, err)
	assert.Nil(t, msg)
}
