package quotes

import (
	"fmt"
	"strings"

	"github.com/bashfilms/quote-backend/internal/pricing"
)

const defaultEventTitle = "Conference"

// Subject builds the mail subject line for a quote request.
func Subject(c ContactInfo, in pricing.Input) string {
	title := strings.TrimSpace(c.EventTitle)
	if title == "" {
		title = defaultEventTitle
	}
	return fmt.Sprintf("Quote request – %s (%s, %d %s, %d %s)",
		title,
		locationLabel(in.Location),
		in.Days, plural("day", in.Days),
		in.Rooms, plural("room", in.Rooms),
	)
}

// Summary builds the human-readable quote body: contact block, event date,
// selections, estimate, notes. The hosting page and the mail body both render
// this text verbatim.
func Summary(c ContactInfo, in pricing.Input, b pricing.Breakdown) string {
	lines := []string{
		"Contact info:",
		"Name: " + c.Name,
		"Email: " + c.Email,
		"Phone: " + c.Phone,
		"Event: " + c.EventTitle,
		"Website: " + c.EventURL,
		"",
		"Event start date:",
		c.EventDateLabel(),
		"",
		"Selections:",
		"Location: " + locationLabel(in.Location),
		fmt.Sprintf("Days: %d", in.Days),
		fmt.Sprintf("Simultaneous locations: %d", in.Rooms),
		"Turnaround: " + string(in.Turnaround),
	}
	if in.TravelApplies() {
		lines = append(lines, "Hotel option: "+string(in.Hotel))
	}
	lines = append(lines,
		"Food per diem: "+mealsLabel(in.MealsProvided),
		"",
		"Estimate:",
		"Starting price: "+b.DisplayPrice(),
		"",
		"Notes:",
		c.Notes,
	)
	return strings.Join(lines, "\n")
}

func locationLabel(loc pricing.Location) string {
	switch loc {
	case pricing.LocationLasVegas:
		return "Las Vegas"
	case pricing.LocationOtherUSCity:
		return "Other US City"
	case pricing.LocationInternational:
		return "International"
	default:
		return string(loc)
	}
}

func mealsLabel(provided bool) string {
	if provided {
		return "Event provides breakfast & lunch (discount)"
	}
	return "Include crew per diems (default)"
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
