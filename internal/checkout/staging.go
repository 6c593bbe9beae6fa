package checkout

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/lahorisamosa/lahorisamosa/internal/domain"
)

var bucketCheckout = []byte("checkout")

// Data is the order-in-progress staged between the checkout form and the
// payment step. It is created by Stage and deleted once an order is placed.
type Data struct {
	CustomerInfo domain.CustomerInfo `json:"customer_info"`
	Items        domain.OrderItems   `json:"items"`
	Subtotal     int                 `json:"subtotal"`
	DeliveryFee  int                 `json:"delivery_fee"`
	Total        int                 `json:"total"`
}

// Staging persists Data per session in its own bolt bucket
type Staging struct {
	db *bolt.DB
}

func NewStaging(db *bolt.DB) (*Staging, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCheckout)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "checkout: init bucket")
	}
	return &Staging{db: db}, nil
}

func (s *Staging) Put(session string, data *Data) error {
	raw, err := jsoniter.Marshal(data)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCheckout).Put([]byte(session), raw)
	})
}

// Get returns the staged data or ErrNoCheckout when the session has none
func (s *Staging) Get(session string) (*Data, error) {
	data := new(Data)
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketCheckout).Get([]byte(session))
		if raw == nil {
			return nil
		}
		found = true
		return jsoniter.Unmarshal(raw, data)
	})
	if err != nil {
		return nil, errors.Wrap(err, "checkout: load staging")
	}
	if !found {
		return nil, ErrNoCheckout
	}
	return data, nil
}

func (s *Staging) Delete(session string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCheckout).Delete([]byte(session))
	})
}
