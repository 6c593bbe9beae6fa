// Package checkout drives the storefront order flow: staging customer info
// against the cart, payment-method selection, and order placement with the
// confirmation email gate.
package checkout

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lahorisamosa/lahorisamosa/internal/cart"
	"github.com/lahorisamosa/lahorisamosa/internal/domain"
	"github.com/lahorisamosa/lahorisamosa/internal/mailer"
	"github.com/lahorisamosa/lahorisamosa/internal/realtime"
	"github.com/lahorisamosa/lahorisamosa/pkg/common"
)

var (
	ErrEmptyCart       = errors.New("checkout: cart is empty")
	ErrNoCheckout      = errors.New("checkout: no staged checkout data")
	ErrUnknownPayment  = errors.New("checkout: unknown payment method")
	ErrInvalidCustomer = errors.New("checkout: incomplete customer info")
)

// OrderRepository persists placed orders
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
}

// EmailSender is the relay gate: placement only completes when the
// confirmation email is accepted.
type EmailSender interface {
	Send(ctx context.Context, msg *mailer.Message) error
}

// Settings exposes the runtime-tunable checkout parameters
type Settings interface {
	DeliveryFee() int
	TransferDiscount() float64
	Currency() string
	StoreName() string
	WhatsappURL() string
	JazzCashAccount() (number, title string)
	RaastAccount() (id, title string)
}

type Service struct {
	carts    *cart.Store
	staging  *Staging
	orders   OrderRepository
	mail     EmailSender
	bus      *realtime.Bus
	settings Settings
}

func NewService(
	carts *cart.Store,
	staging *Staging,
	orders OrderRepository,
	mail EmailSender,
	bus *realtime.Bus,
	settings Settings,
) *Service {
	return &Service{
		carts:    carts,
		staging:  staging,
		orders:   orders,
		mail:     mail,
		bus:      bus,
		settings: settings,
	}
}

// Methods lists the available payment methods with transfer details pulled
// from settings.
func (s *Service) Methods() []PaymentMethod {
	jazzNumber, jazzTitle := s.settings.JazzCashAccount()
	raastID, raastTitle := s.settings.RaastAccount()
	return []PaymentMethod{
		{
			ID:          PaymentCOD,
			Name:        "Cash on Delivery",
			Description: "Pay when your order is delivered",
		},
		{
			ID:          PaymentJazzCash,
			Name:        "JazzCash Transfer",
			Description: "Pay via JazzCash and get a discount",
			Discount:    true,
			Details:     &TransferAccount{Title: "JazzCash Account Details", Number: jazzNumber, Account: jazzTitle},
		},
		{
			ID:          PaymentRaast,
			Name:        "Raast ID Transfer",
			Description: "Pay via Raast ID and get a discount",
			Discount:    true,
			Details:     &TransferAccount{Title: "Raast ID Details", Number: raastID, Account: raastTitle},
		},
	}
}

func (s *Service) method(id string) (PaymentMethod, bool) {
	for _, m := range s.Methods() {
		if m.ID == id {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

func validCustomer(info domain.CustomerInfo) bool {
	return strings.TrimSpace(info.Name) != "" &&
		strings.TrimSpace(info.Phone) != "" &&
		strings.TrimSpace(info.Email) != "" &&
		strings.TrimSpace(info.Address) != ""
}

// Stage snapshots the session's cart together with the customer info and
// the delivery fee. An empty cart short-circuits with ErrEmptyCart so the
// caller can redirect back to the cart view.
func (s *Service) Stage(session string, info domain.CustomerInfo) (*Data, error) {
	if !validCustomer(info) {
		return nil, ErrInvalidCustomer
	}

	state, err := s.carts.Get(session)
	if err != nil {
		return nil, err
	}
	if state.Empty() {
		return nil, ErrEmptyCart
	}

	items := make(domain.OrderItems, 0, len(state.Items))
	for _, it := range state.Items {
		items = append(items, domain.OrderItem{
			ID:       it.ProductID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    it.Image,
		})
	}

	fee := s.settings.DeliveryFee()
	data := &Data{
		CustomerInfo: info,
		Items:        items,
		Subtotal:     state.Total,
		DeliveryFee:  fee,
		Total:        state.Total + fee,
	}
	if err := s.staging.Put(session, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Staged returns the session's order-in-progress, ErrNoCheckout when the
// payment step is entered without one.
func (s *Service) Staged(session string) (*Data, error) {
	return s.staging.Get(session)
}

// Quote returns the total a payment method would charge without placing
// the order.
func (s *Service) Quote(session, methodID string) (int, error) {
	data, err := s.staging.Get(session)
	if err != nil {
		return 0, err
	}
	m, ok := s.method(methodID)
	if !ok {
		return 0, ErrUnknownPayment
	}
	if m.Discount {
		return DiscountedTotal(data.Total, s.settings.TransferDiscount()), nil
	}
	return data.Total, nil
}

// Place finalizes the order: applies the payment method's discount, sends
// the confirmation email, persists the order as pending, then clears the
// staging and the cart. A failed email aborts placement and leaves the
// staged data intact; there is no automatic retry.
func (s *Service) Place(ctx context.Context, session, methodID string) (*domain.Order, error) {
	data, err := s.staging.Get(session)
	if err != nil {
		return nil, err
	}
	m, ok := s.method(methodID)
	if !ok {
		return nil, ErrUnknownPayment
	}

	total := data.Total
	discount := 0
	if m.Discount {
		total = DiscountedTotal(data.Total, s.settings.TransferDiscount())
		discount = data.Total - total
	}

	order := &domain.Order{
		ID:            common.OrderToken("LAHORI"),
		CustomerInfo:  data.CustomerInfo,
		Items:         data.Items,
		Total:         total,
		PaymentMethod: m.Name,
		Status:        domain.OrderStatusPending,
	}

	if data.CustomerInfo.Email != "" {
		msg, err := mailer.RenderOrderConfirmation(mailer.OrderEmail{
			OrderID:       order.ID,
			Customer:      data.CustomerInfo,
			Items:         data.Items,
			Subtotal:      data.Subtotal,
			DeliveryFee:   data.DeliveryFee,
			Discount:      discount,
			Total:         total,
			PaymentMethod: m.Name,
			Currency:      s.settings.Currency(),
			StoreName:     s.settings.StoreName(),
			WhatsappURL:   s.settings.WhatsappURL(),
		})
		if err != nil {
			return nil, err
		}
		if err := s.mail.Send(ctx, msg); err != nil {
			zap.L().Warn("order confirmation email failed",
				zap.String("order_id", order.ID), zap.Error(err))
			return nil, err
		}
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, errors.Wrap(err, "checkout: save order")
	}

	if err := s.staging.Delete(session); err != nil {
		zap.L().Warn("failed to clear staged checkout", zap.Error(err))
	}
	if err := s.carts.Delete(session); err != nil {
		zap.L().Warn("failed to clear cart after order", zap.Error(err))
	}

	s.bus.Publish(realtime.TableOrders, realtime.EventInsert, order)

	zap.L().Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("payment_method", m.ID),
		zap.Int("total", total))
	return order, nil
}

// Discard drops staged checkout data without placing an order
func (s *Service) Discard(session string) error {
	return s.staging.Delete(session)
}
