// internal/marketplace/validate_test.go
package marketplace

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRoyaltyRate(t *testing.T) {
	assert.True(t, ValidRoyaltyRate(0))
	assert.True(t, ValidRoyaltyRate(500))
	assert.True(t, ValidRoyaltyRate(10000), "boundary value is accepted")
	assert.False(t, ValidRoyaltyRate(10001))
	assert.False(t, ValidRoyaltyRate(15000))
}

func TestValidCommissionRate(t *testing.T) {
	assert.True(t, ValidCommissionRate(0))
	assert.True(t, ValidCommissionRate(250))
	assert.True(t, ValidCommissionRate(1000), "boundary value is accepted")
	assert.False(t, ValidCommissionRate(1001))
	assert.False(t, ValidCommissionRate(1500))
}

func TestValidAmount(t *testing.T) {
	assert.False(t, ValidAmount(0))
	assert.True(t, ValidAmount(1))
	assert.True(t, ValidAmount(5000000))
}

func TestValidTitle(t *testing.T) {
	assert.False(t, ValidTitle(""))
	assert.True(t, ValidTitle("Quantum Computing Algorithm"))
	assert.True(t, ValidTitle(strings.Repeat("a", 100)))
	assert.False(t, ValidTitle(strings.Repeat("a", 101)))
}

func TestValidSummary(t *testing.T) {
	assert.True(t, ValidSummary(""), "summary may be empty")
	assert.True(t, ValidSummary(strings.Repeat("b", 500)))
	assert.False(t, ValidSummary(strings.Repeat("b", 501)))
}

func TestValidDuration(t *testing.T) {
	assert.False(t, ValidDuration(0))
	assert.True(t, ValidDuration(1))
	assert.True(t, ValidDuration(43200))
	assert.True(t, ValidDuration(525600), "boundary value is accepted")
	assert.False(t, ValidDuration(525601))
}

func TestRoyaltyAmountTruncates(t *testing.T) {
	assert.Equal(t, uint64(500), RoyaltyAmount(10000, 500))
	assert.Equal(t, uint64(0), RoyaltyAmount(1, 1), "partial units round toward the payer")
	assert.Equal(t, uint64(0), RoyaltyAmount(19, 500))
	assert.Equal(t, uint64(1), RoyaltyAmount(20, 500))
	assert.Equal(t, uint64(10000), RoyaltyAmount(10000, 10000))
}

func TestRoyaltyAmountLargeUsage(t *testing.T) {
	// The usage metric has no upper bound; the multiply must not wrap.
	assert.Equal(t, uint64(1)<<62, RoyaltyAmount(1<<62, 10000))
	assert.Equal(t, uint64(math.MaxUint64), RoyaltyAmount(math.MaxUint64, 10000))
	assert.Equal(t, uint64(math.MaxUint64)/10000, RoyaltyAmount(math.MaxUint64, 1))
	assert.Equal(t, (uint64(1)<<62)/20, RoyaltyAmount(1<<62, 500))
}
