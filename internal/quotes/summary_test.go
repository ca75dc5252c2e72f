package quotes

import (
	"strings"
	"testing"

	"github.com/bashfilms/quote-backend/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoContact() ContactInfo {
	return ContactInfo{
		Name:       "Dana Smith",
		Email:      "dana@example.com",
		Phone:      "7025551234",
		EventTitle: "Tech Summit",
		EventURL:   "https://techsummit.example.com",
		Notes:      "Two keynote rooms need extra coverage.",
		EventMonth: 9,
		EventDay:   12,
		EventYear:  2026,
	}
}

func TestSubjectIncludesTitleAndSelections(t *testing.T) {
	in := pricing.Input{Location: pricing.LocationLasVegas, Days: 2, Rooms: 1, Turnaround: pricing.TurnaroundFourWeeks}
	got := Subject(demoContact(), in)
	assert.Equal(t, "Quote request – Tech Summit (Las Vegas, 2 days, 1 room)", got)
}

func TestSubjectFallsBackToConference(t *testing.T) {
	c := demoContact()
	c.EventTitle = "  "
	in := pricing.Input{Location: pricing.LocationInternational, Days: 3, Rooms: 2, Turnaround: pricing.TurnaroundTwoWeeks}
	got := Subject(c, in)
	assert.Equal(t, "Quote request – Conference (International, 3 days, 2 rooms)", got)
}

func TestSummarySectionsAndOrder(t *testing.T) {
	in := pricing.Input{
		Location:   pricing.LocationOtherUSCity,
		Days:       3,
		Rooms:      2,
		Turnaround: pricing.TurnaroundTwoWeeks,
		Hotel:      pricing.HotelBashPays,
	}
	b := pricing.Compute(in)

	body := Summary(demoContact(), in, b)
	lines := strings.Split(body, "\n")

	require.Equal(t, "Contact info:", lines[0])
	assert.Equal(t, "Name: Dana Smith", lines[1])
	assert.Equal(t, "Email: dana@example.com", lines[2])
	assert.Equal(t, "Phone: 7025551234", lines[3])
	assert.Equal(t, "Event: Tech Summit", lines[4])
	assert.Equal(t, "Website: https://techsummit.example.com", lines[5])
	assert.Equal(t, "", lines[6])
	assert.Equal(t, "Event start date:", lines[7])
	assert.Equal(t, "September 12, 2026", lines[8])
	assert.Equal(t, "", lines[9])
	assert.Equal(t, "Selections:", lines[10])
	assert.Equal(t, "Location: Other US City", lines[11])
	assert.Equal(t, "Days: 3", lines[12])
	assert.Equal(t, "Simultaneous locations: 2", lines[13])
	assert.Equal(t, "Turnaround: 2w", lines[14])
	assert.Equal(t, "Hotel option: bash_pays", lines[15])
	assert.Equal(t, "Food per diem: Include crew per diems (default)", lines[16])
	assert.Equal(t, "", lines[17])
	assert.Equal(t, "Estimate:", lines[18])
	assert.Equal(t, "Starting price: $20,475.00", lines[19])
	assert.Equal(t, "", lines[20])
	assert.Equal(t, "Notes:", lines[21])
	assert.Equal(t, "Two keynote rooms need extra coverage.", lines[22])
}

func TestSummaryOmitsHotelLineInHomeMarket(t *testing.T) {
	in := pricing.Input{Location: pricing.LocationLasVegas, Days: 2, Rooms: 1, Turnaround: pricing.TurnaroundFourWeeks, Hotel: pricing.HotelBashPays}
	body := Summary(demoContact(), in, pricing.Compute(in))
	assert.NotContains(t, body, "Hotel option:")
}

func TestSummaryMealsDiscountLabel(t *testing.T) {
	in := pricing.Input{Location: pricing.LocationLasVegas, Days: 2, Rooms: 1, Turnaround: pricing.TurnaroundFourWeeks, MealsProvided: true}
	body := Summary(demoContact(), in, pricing.Compute(in))
	assert.Contains(t, body, "Food per diem: Event provides breakfast & lunch (discount)")
}

func TestSummaryOutOfScopeShowsSentinel(t *testing.T) {
	in := pricing.Input{Location: pricing.LocationLasVegas, Days: 1, Rooms: pricing.RoomsOutOfScope, Turnaround: pricing.TurnaroundFourWeeks}
	body := Summary(demoContact(), in, pricing.Compute(in))
	assert.Contains(t, body, "Starting price: "+pricing.ContactForQuote)
	assert.NotContains(t, body, "$0.00")
}
