package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDollarsToCents(t *testing.T) {
	assert.Equal(t, int64(5000), DollarsToCents(50.00))
	assert.Equal(t, int64(1999), DollarsToCents(19.99))
	assert.Equal(t, int64(1), DollarsToCents(0.005))
	assert.Equal(t, int64(-1250), DollarsToCents(-12.50))
	assert.Equal(t, int64(0), DollarsToCents(0))
}

func TestCentsToDollars(t *testing.T) {
	assert.Equal(t, 50.0, CentsToDollars(5000))
	assert.Equal(t, 19.99, CentsToDollars(1999))
	assert.Equal(t, -12.5, CentsToDollars(-1250))
}

func TestUSD(t *testing.T) {
	assert.Equal(t, "$50.00", USD(5000))
	assert.Equal(t, "$0.07", USD(7))
	assert.Equal(t, "-$12.50", USD(-1250))
	assert.Equal(t, "$0.00", USD(0))
}
