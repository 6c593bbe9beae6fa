package cart

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var bucketCarts = []byte("carts")

// Store persists cart state per session id in a bolt bucket. Mutations run
// inside an update transaction so two requests for the same session cannot
// interleave a read-modify-write.
type Store struct {
	db *bolt.DB
}

func NewStore(db *bolt.DB) (*Store, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCarts)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "cart: init bucket")
	}
	return &Store{db: db}, nil
}

// Get loads a session's cart; a session with no stored cart gets an empty
// one. The total is recomputed on load so a stale stored value can never
// surface.
func (st *Store) Get(session string) (*State, error) {
	state := new(State)
	err := st.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketCarts).Get([]byte(session))
		if raw == nil {
			return nil
		}
		return jsoniter.Unmarshal(raw, state)
	})
	if err != nil {
		return nil, errors.Wrap(err, "cart: load")
	}
	state.recalc()
	return state, nil
}

// Mutate applies fn to the session's cart inside one transaction and
// persists the result. The updated state is returned.
func (st *Store) Mutate(session string, fn func(*State)) (*State, error) {
	state := new(State)
	err := st.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCarts)
		if raw := b.Get([]byte(session)); raw != nil {
			if err := jsoniter.Unmarshal(raw, state); err != nil {
				return err
			}
		}
		state.recalc()
		fn(state)
		raw, err := jsoniter.Marshal(state)
		if err != nil {
			return err
		}
		return b.Put([]byte(session), raw)
	})
	if err != nil {
		return nil, errors.Wrap(err, "cart: mutate")
	}
	return state, nil
}

// Delete drops the session's cart entirely
func (st *Store) Delete(session string) error {
	return st.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCarts).Delete([]byte(session))
	})
}
