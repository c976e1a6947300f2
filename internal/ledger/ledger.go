// Package ledger computes the funding state of a wish from its offer set.
// All functions are pure: the raised total is derived on every read and
// never stored, so there is no second copy to drift out of sync.
package ledger

import (
	"github.com/nartbayev/wishwell/internal/models"
	"github.com/nartbayev/wishwell/pkg/money"
)

// Raised sums the amounts of all offers attached to a wish. The sum is
// decimal-exact; an empty offer set raises zero.
func Raised(offers []models.Offer) money.Amount {
	total := money.Zero()
	for _, offer := range offers {
		total = money.FromDecimal(total.Add(offer.Amount.Decimal))
	}
	return total
}

// IsLocked reports whether the wish has at least one offer. A locked wish
// may not change price and may not be deleted.
func IsLocked(offers []models.Offer) bool {
	return len(offers) > 0
}

// Fits reports whether adding amount to the current raised total stays
// within price.
func Fits(raised, amount, price money.Amount) bool {
	return raised.Add(amount.Decimal).Cmp(price.Decimal) <= 0
}
