package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pizza() Item {
	return Item{ProductID: 1, Name: "Pizza Samosa (12p)", Price: 650}
}

func potato() Item {
	return Item{ProductID: 5, Name: "Potato Samosa (12p)", Price: 300}
}

func TestAddSameProductIncrementsQuantity(t *testing.T) {
	s := new(State)
	for i := 0; i < 4; i++ {
		s.Add(pizza())
	}
	assert.Len(t, s.Items, 1)
	assert.Equal(t, 4, s.Items[0].Quantity)
	assert.Equal(t, 4*650, s.Total)
}

func TestAddDistinctProductsAppendInOrder(t *testing.T) {
	s := new(State)
	s.Add(pizza())
	s.Add(potato())
	s.Add(pizza())

	assert.Len(t, s.Items, 2)
	assert.Equal(t, int64(1), s.Items[0].ProductID)
	assert.Equal(t, int64(5), s.Items[1].ProductID)
	assert.Equal(t, 2*650+300, s.Total)
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	s := new(State)
	s.Add(pizza())
	s.Add(potato())

	s.UpdateQuantity(1, 0)
	assert.Len(t, s.Items, 1)
	assert.Equal(t, int64(5), s.Items[0].ProductID)
	assert.Equal(t, 300, s.Total)

	s.UpdateQuantity(5, -3)
	assert.Empty(t, s.Items)
	assert.Zero(t, s.Total)
}

func TestUpdateQuantitySets(t *testing.T) {
	s := new(State)
	s.Add(potato())
	s.UpdateQuantity(5, 7)
	assert.Equal(t, 7, s.Items[0].Quantity)
	assert.Equal(t, 7*300, s.Total)
}

func TestOpsOnUnknownIDAreNoops(t *testing.T) {
	s := new(State)
	s.Add(pizza())

	s.UpdateQuantity(99, 3)
	s.Remove(99)

	assert.Len(t, s.Items, 1)
	assert.Equal(t, 650, s.Total)
}

func TestRemove(t *testing.T) {
	s := new(State)
	s.Add(pizza())
	s.Add(potato())
	s.Remove(1)

	assert.Len(t, s.Items, 1)
	assert.Equal(t, 300, s.Total)
}

func TestTotalIsDerivedAndIdempotent(t *testing.T) {
	s := new(State)
	s.Add(pizza())
	s.Add(pizza())
	s.Add(potato())

	want := s.Total
	s.recalc()
	assert.Equal(t, want, s.Total)
	assert.Equal(t, 2*650+300, s.Total)
}

func TestSideCartFlagOrthogonal(t *testing.T) {
	s := new(State)
	s.SideCartOpen = true
	s.Add(pizza())
	assert.True(t, s.SideCartOpen)

	s.Clear()
	assert.True(t, s.SideCartOpen)
	assert.Empty(t, s.Items)
}
