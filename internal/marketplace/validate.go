// internal/marketplace/validate.go
package marketplace

import "unicode/utf8"

// Pure input predicates. Every mutating operation runs the relevant checks
// before touching state; a failed check aborts with no mutation.

// ValidRoyaltyRate reports whether r is a legal royalty rate in basis points.
// The interval is closed: 10000 is accepted.
func ValidRoyaltyRate(r uint64) bool {
	return r <= MaxRoyaltyRate
}

// ValidCommissionRate reports whether r is a legal commission rate in basis
// points. The interval is closed: 1000 is accepted.
func ValidCommissionRate(r uint64) bool {
	return r <= MaxCommissionRate
}

// ValidAmount reports whether a satisfies the minimum positive amount.
func ValidAmount(a uint64) bool {
	return a >= MinPositiveAmount
}

// ValidTitle requires a non-empty title of at most MaxTitleLength characters.
func ValidTitle(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= 1 && n <= MaxTitleLength
}

// ValidSummary allows an empty summary but caps it at MaxSummaryLength
// characters.
func ValidSummary(s string) bool {
	return utf8.RuneCountInString(s) <= MaxSummaryLength
}

// ValidDuration reports whether d is a legal licensing duration in time units.
func ValidDuration(d uint64) bool {
	return d >= 1 && d <= MaxLicensingDuration
}
