package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountedTotal(t *testing.T) {
	// round(total * 0.9)
	assert.Equal(t, 675, DiscountedTotal(750, 0.10))
	assert.Equal(t, 585, DiscountedTotal(650, 0.10))
	assert.Equal(t, 631, DiscountedTotal(701, 0.10)) // 630.9 rounds up
	assert.Equal(t, 90, DiscountedTotal(100, 0.10))
	assert.Equal(t, 0, DiscountedTotal(0, 0.10))
}

func TestDiscountedTotalZeroPercent(t *testing.T) {
	assert.Equal(t, 750, DiscountedTotal(750, 0))
}
