package ledger_test

import (
	"testing"

	"github.com/nartbayev/wishwell/internal/ledger"
	"github.com/nartbayev/wishwell/internal/models"
	"github.com/nartbayev/wishwell/pkg/money"
	"github.com/stretchr/testify/assert"
)

func offersOf(amounts ...string) []models.Offer {
	offers := make([]models.Offer, 0, len(amounts))
	for _, a := range amounts {
		offers = append(offers, models.Offer{Amount: money.MustParse(a)})
	}
	return offers
}

func TestRaised_EmptySetIsZero(t *testing.T) {
	assert.True(t, ledger.Raised(nil).IsZero())
	assert.True(t, ledger.Raised([]models.Offer{}).IsZero())
}

func TestRaised_ExactDecimalSum(t *testing.T) {
	// 0.1 + 0.2 is the classic binary-float trap; the sum must be exactly
	// 0.3, not 0.30000000000000004.
	raised := ledger.Raised(offersOf("0.10", "0.20"))
	assert.Equal(t, "0.30", raised.Canonical())

	raised = ledger.Raised(offersOf("33.33", "33.33", "33.34"))
	assert.Equal(t, "100.00", raised.Canonical())
}

func TestIsLocked(t *testing.T) {
	assert.False(t, ledger.IsLocked(nil))
	assert.True(t, ledger.IsLocked(offersOf("1")))
}

func TestFits(t *testing.T) {
	price := money.MustParse("100")

	assert.True(t, ledger.Fits(money.Zero(), money.MustParse("100"), price))
	assert.True(t, ledger.Fits(money.MustParse("60"), money.MustParse("40"), price))
	assert.False(t, ledger.Fits(money.MustParse("60"), money.MustParse("40.01"), price))
	assert.False(t, ledger.Fits(money.MustParse("100"), money.MustParse("0.01"), price))
}
