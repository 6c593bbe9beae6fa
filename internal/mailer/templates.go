package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/lahorisamosa/lahorisamosa/internal/domain"
)

// OrderEmail is the data handed to the confirmation template
type OrderEmail struct {
	OrderID       string
	Customer      domain.CustomerInfo
	Items         domain.OrderItems
	Subtotal      int
	DeliveryFee   int
	Discount      int
	Total         int
	PaymentMethod string
	Currency      string
	StoreName     string
	WhatsappURL   string
}

var tmplFuncs = template.FuncMap{
	"lineTotal": func(it domain.OrderItem) int { return it.Price * it.Quantity },
}

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").Funcs(tmplFuncs).Parse(`
<div style="background-color:#f7fafc;padding:40px 20px;font-family:'Segoe UI',Roboto,Helvetica,Arial,sans-serif;">
  <div style="background-color:#ffffff;max-width:600px;margin:0 auto;border-radius:16px;overflow:hidden;border:1px solid #e2e8f0;">
    <div style="background:linear-gradient(135deg,#d97706 0%,#b45309 100%);padding:35px 20px;text-align:center;color:#ffffff;">
      <div style="font-size:14px;text-transform:uppercase;letter-spacing:2px;opacity:0.9;margin-bottom:8px;">Order Confirmed</div>
      <h1 style="margin:0;font-size:28px;font-weight:800;">Enjoy Your Samosas! 🥟</h1>
    </div>
    <div style="padding:30px;">
      <p style="font-size:17px;color:#2d3748;margin-top:0;">Hi <strong>{{.Customer.Name}}</strong>,</p>
      <p style="color:#4a5568;font-size:15px;line-height:1.6;">Your order has been received and is now being prepared with love. We'll have it delivered to your doorstep soon!</p>
      <div style="background-color:#fffaf0;border:1px solid #fbd38d;border-radius:12px;padding:20px;margin:25px 0;">
        <table style="width:100%;">
          <tr>
            <td style="color:#7b341e;font-size:13px;text-transform:uppercase;font-weight:700;">Order ID</td>
            <td style="color:#7b341e;font-size:13px;text-transform:uppercase;font-weight:700;text-align:right;">Payment</td>
          </tr>
          <tr>
            <td style="font-size:17px;font-weight:800;color:#1a202c;font-family:monospace;">#{{.OrderID}}</td>
            <td style="font-size:16px;font-weight:700;color:#1a202c;text-align:right;">{{.PaymentMethod}}</td>
          </tr>
        </table>
      </div>
      <table style="width:100%;border-collapse:collapse;">
        <tbody>
        {{- range .Items}}
          <tr>
            <td style="padding:12px 10px;border-bottom:1px solid #edf2f7;">
              <div style="font-weight:600;color:#1a202c;font-size:15px;">{{.Name}}</div>
              <div style="font-size:13px;color:#718096;">{{$.Currency}}{{.Price}} per unit</div>
            </td>
            <td style="padding:12px 10px;border-bottom:1px solid #edf2f7;text-align:center;font-weight:600;">x{{.Quantity}}</td>
            <td style="padding:12px 10px;border-bottom:1px solid #edf2f7;color:#d97706;font-weight:700;text-align:right;">{{$.Currency}}{{lineTotal .}}</td>
          </tr>
        {{- end}}
          <tr>
            <td colspan="2" style="padding-top:20px;text-align:right;font-size:16px;color:#4a5568;">Delivery Fee</td>
            <td style="padding-top:20px;text-align:right;font-weight:600;">{{.Currency}}{{.DeliveryFee}}</td>
          </tr>
          {{- if gt .Discount 0}}
          <tr>
            <td colspan="2" style="text-align:right;font-size:16px;color:#16a34a;">Discount</td>
            <td style="text-align:right;font-weight:600;color:#16a34a;">-{{.Currency}}{{.Discount}}</td>
          </tr>
          {{- end}}
          <tr>
            <td colspan="2" style="text-align:right;font-size:18px;font-weight:800;color:#1a202c;">Total</td>
            <td style="text-align:right;font-size:18px;font-weight:800;color:#d97706;">{{.Currency}}{{.Total}}</td>
          </tr>
        </tbody>
      </table>
      <p style="color:#4a5568;font-size:14px;margin-top:25px;">Delivering to: {{.Customer.Address}}</p>
      {{- if .WhatsappURL}}
      <div style="text-align:center;">
        <a href="{{.WhatsappURL}}" style="display:inline-block;padding:14px 30px;background-color:#25D366;color:#ffffff;text-decoration:none;border-radius:10px;font-weight:700;font-size:16px;margin-top:20px;">Chat with us</a>
      </div>
      {{- end}}
    </div>
    <div style="text-align:center;padding:30px 20px;color:#718096;font-size:13px;">{{.StoreName}} · Lahore, Pakistan</div>
  </div>
</div>`))

// RenderOrderConfirmation builds the customer confirmation email
func RenderOrderConfirmation(data OrderEmail) (*Message, error) {
	var buf bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return &Message{
		To:          []string{data.Customer.Email},
		Subject:     fmt.Sprintf("✅ Order Confirmed: #%s", data.OrderID),
		HTMLContent: buf.String(),
	}, nil
}

type statusStyle struct {
	subject string
	body    string
	header  string
	icon    string
}

var statusStyles = map[domain.OrderStatus]statusStyle{
	domain.OrderStatusConfirmed: {
		subject: "✅ Order Confirmed: #%s",
		body:    "Great news! Your order has been confirmed.",
		header:  "linear-gradient(135deg,#2563eb 0%,#1d4ed8 100%)",
		icon:    "👨‍🍳",
	},
	domain.OrderStatusDelivered: {
		subject: "📦 Order Delivered: #%s",
		body:    "Your order has been delivered!",
		header:  "linear-gradient(135deg,#16a34a 0%,#15803d 100%)",
		icon:    "🎁",
	},
	domain.OrderStatusCancelled: {
		subject: "❌ Order Cancelled: #%s",
		body:    "Your order has been cancelled.",
		header:  "linear-gradient(135deg,#dc2626 0%,#b91c1c 100%)",
		icon:    "🚫",
	},
}

var statusTmpl = template.Must(template.New("order_status").Parse(`
<div style="font-family:sans-serif;padding:20px;background:#f7fafc;">
  <div style="max-width:600px;margin:0 auto;background:#fff;border-radius:8px;overflow:hidden;">
    <div style="background:{{.Header}};padding:30px;text-align:center;color:white;">
      <h1>{{.Subject}} {{.Icon}}</h1>
    </div>
    <div style="padding:20px;">
      <p>Hi {{.Name}},</p>
      <p>{{.Body}}</p>
      <p>Total: {{.Currency}}{{.Total}}</p>
    </div>
  </div>
</div>`))

// RenderStatusEmail builds the customer notice for a status change. Returns
// nil for statuses that carry no notification (pending).
func RenderStatusEmail(order *domain.Order, status domain.OrderStatus, currency string) (*Message, error) {
	style, ok := statusStyles[status]
	if !ok {
		return nil, nil
	}
	subject := fmt.Sprintf(style.subject, order.ID)

	var buf bytes.Buffer
	err := statusTmpl.Execute(&buf, struct {
		Subject, Icon, Name, Body, Currency string
		Header                              template.CSS
		Total                               int
	}{
		Subject:  subject,
		Icon:     style.icon,
		Header:   template.CSS(style.header),
		Name:     order.CustomerInfo.Name,
		Body:     style.body,
		Currency: currency,
		Total:    order.Total,
	})
	if err != nil {
		return nil, err
	}
	return &Message{
		To:          []string{order.CustomerInfo.Email},
		Subject:     subject,
		HTMLContent: buf.String(),
	}, nil
}
