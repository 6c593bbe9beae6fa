package checkout

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/lahorisamosa/lahorisamosa/internal/cart"
	"github.com/lahorisamosa/lahorisamosa/internal/domain"
	"github.com/lahorisamosa/lahorisamosa/internal/mailer"
	"github.com/lahorisamosa/lahorisamosa/internal/realtime"
)

type fakeOrderRepo struct {
	orders []*domain.Order
	err    error
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	if r.err != nil {
		return r.err
	}
	r.orders = append(r.orders, order)
	return nil
}

type fakeSender struct {
	sent []*mailer.Message
	err  error
}

func (s *fakeSender) Send(_ context.Context, msg *mailer.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type fakeSettings struct{}

func (fakeSettings) DeliveryFee() int                { return 100 }
func (fakeSettings) TransferDiscount() float64       { return 0.10 }
func (fakeSettings) Currency() string                { return "Rs." }
func (fakeSettings) StoreName() string               { return "Lahori Samosa" }
func (fakeSettings) WhatsappURL() string             { return "https://wa.me/923244060113" }
func (fakeSettings) JazzCashAccount() (string, string) {
	return "+92 324 4060113", "Lahori Samosa"
}
func (fakeSettings) RaastAccount() (string, string) {
	return "+92 324 4060113", "Lahori Samosa"
}

type fixture struct {
	svc    *Service
	carts  *cart.Store
	repo   *fakeOrderRepo
	sender *fakeSender
	bus    *realtime.Bus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "store.db"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	carts, err := cart.NewStore(db)
	require.NoError(t, err)
	staging, err := NewStaging(db)
	require.NoError(t, err)

	repo := &fakeOrderRepo{}
	sender := &fakeSender{}
	bus := realtime.NewBus()
	return &fixture{
		svc:    NewService(carts, staging, repo, sender, bus, fakeSettings{}),
		carts:  carts,
		repo:   repo,
		sender: sender,
		bus:    bus,
	}
}

func customer() domain.CustomerInfo {
	return domain.CustomerInfo{
		Name: "Ali Raza", Phone: "0324 4060113",
		Email: "ali@example.com", Address: "DHA Phase 5, Lahore",
	}
}

func fillCart(t *testing.T, f *fixture, session string) {
	t.Helper()
	_, err := f.carts.Mutate(session, func(s *cart.State) {
		s.Add(cart.Item{ProductID: 1, Name: "Pizza Samosa (12p)", Price: 650})
	})
	require.NoError(t, err)
}

func TestStageEmptyCartShortCircuits(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Stage("sess", customer())
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestStageRejectsIncompleteCustomer(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, "sess")

	info := customer()
	info.Address = "  "
	_, err := f.svc.Stage("sess", info)
	require.ErrorIs(t, err, ErrInvalidCustomer)
}

func TestStageAddsDeliveryFee(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, "sess")

	data, err := f.svc.Stage("sess", customer())
	require.NoError(t, err)
	assert.Equal(t, 650, data.Subtotal)
	assert.Equal(t, 100, data.DeliveryFee)
	assert.Equal(t, 750, data.Total)

	staged, err := f.svc.Staged("sess")
	require.NoError(t, err)
	assert.Equal(t, data, staged)
}

func TestStagedWithoutStageRedirects(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Staged("sess")
	require.ErrorIs(t, err, ErrNoCheckout)
}

func TestPlaceCashOnDelivery(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, "sess")
	_, err := f.svc.Stage("sess", customer())
	require.NoError(t, err)

	var inserted []*domain.Order
	_, err = f.bus.Subscribe(realtime.TableOrders, func(evt realtime.Event) {
		if evt.Type == realtime.EventInsert {
			inserted = append(inserted, evt.Payload.(*domain.Order))
		}
	})
	require.NoError(t, err)

	order, err := f.svc.Place(context.Background(), "sess", PaymentCOD)
	require.NoError(t, err)

	// subtotal + fixed delivery fee, no discount
	assert.Equal(t, 750, order.Total)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "Cash on Delivery", order.PaymentMethod)
	assert.True(t, len(order.ID) > len("LAHORI"))
	assert.Equal(t, "LAHORI", order.ID[:6])

	// relay called exactly once, recipient is the entered email
	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, []string{"ali@example.com"}, f.sender.sent[0].To)

	require.Len(t, f.repo.orders, 1)
	require.Len(t, inserted, 1)
	assert.Equal(t, order.ID, inserted[0].ID)

	// staging consumed, cart cleared
	_, err = f.svc.Staged("sess")
	assert.ErrorIs(t, err, ErrNoCheckout)
	state, err := f.carts.Get("sess")
	require.NoError(t, err)
	assert.True(t, state.Empty())
}

func TestPlaceManualTransferAppliesDiscount(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, "sess")
	_, err := f.svc.Stage("sess", customer())
	require.NoError(t, err)

	order, err := f.svc.Place(context.Background(), "sess", PaymentJazzCash)
	require.NoError(t, err)
	assert.Equal(t, 675, order.Total) // round(750 * 0.9)
	assert.Equal(t, "JazzCash Transfer", order.PaymentMethod)
}

func TestPlaceUnknownMethod(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, "sess")
	_, err := f.svc.Stage("sess", customer())
	require.NoError(t, err)

	_, err = f.svc.Place(context.Background(), "sess", "bitcoin")
	require.ErrorIs(t, err, ErrUnknownPayment)
}

func TestPlaceWithoutStaging(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Place(context.Background(), "sess", PaymentCOD)
	require.ErrorIs(t, err, ErrNoCheckout)
}

func TestPlaceEmailFailureKeepsStaging(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, "sess")
	_, err := f.svc.Stage("sess", customer())
	require.NoError(t, err)

	f.sender.err = errors.New("provider down")
	_, err = f.svc.Place(context.Background(), "sess", PaymentCOD)
	require.Error(t, err)

	// no order row, staging and cart intact: the flow stays on the
	// payment step and the user may try again
	assert.Empty(t, f.repo.orders)
	_, err = f.svc.Staged("sess")
	assert.NoError(t, err)
	state, err := f.carts.Get("sess")
	require.NoError(t, err)
	assert.False(t, state.Empty())
}

func TestQuote(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, "sess")
	_, err := f.svc.Stage("sess", customer())
	require.NoError(t, err)

	cod, err := f.svc.Quote("sess", PaymentCOD)
	require.NoError(t, err)
	assert.Equal(t, 750, cod)

	jazz, err := f.svc.Quote("sess", PaymentJazzCash)
	require.NoError(t, err)
	assert.Equal(t, 675, jazz)

	_, err = f.svc.Quote("sess", "bogus")
	assert.ErrorIs(t, err, ErrUnknownPayment)
}

func TestOrderIDsUnique(t *testing.T) {
	f := newFixture(t)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		sess := "sess"
		fillCart(t, f, sess)
		_, err := f.svc.Stage(sess, customer())
		require.NoError(t, err)
		order, err := f.svc.Place(context.Background(), sess, PaymentCOD)
		require.NoError(t, err)
		require.False(t, seen[order.ID], "duplicate order id %s", order.ID)
		seen[order.ID] = true
	}
}
