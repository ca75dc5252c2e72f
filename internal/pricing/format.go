package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ContactForQuote is shown instead of a number when the booking is out of
// scope. Out-of-scope bookings are never presented as $0.00.
const ContactForQuote = "Contact for quote"

// DisplayPrice renders the breakdown the way the widget shows it: a currency
// string with exactly two decimal places, or the contact-for-quote sentinel.
func (b Breakdown) DisplayPrice() string {
	if b.OutOfScope {
		return ContactForQuote
	}
	return FormatUSD(b.Total)
}

// FormatUSD renders a dollar amount as $#,##0.00.
func FormatUSD(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	whole, frac, _ := strings.Cut(fixed, ".")

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	sb.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('.')
	sb.WriteString(frac)
	return sb.String()
}
