package controllers

import (
	"net/http"
	"strings"

	"github.com/bashfilms/quote-backend/api/responses"
	"github.com/bashfilms/quote-backend/api/validators"
	"github.com/bashfilms/quote-backend/internal/pricing"
	"github.com/bashfilms/quote-backend/internal/quotes"
	pkgerrors "github.com/bashfilms/quote-backend/pkg/errors"
	"github.com/bashfilms/quote-backend/pkg/logger"
)

// SelectionsRequest mirrors the raw form selections.
type SelectionsRequest struct {
	Location      string `json:"location" validate:"required,oneof=las_vegas other_us_city international"`
	Days          int    `json:"days" validate:"required,oneof=1 2 3 4 5 7"`
	Rooms         int    `json:"rooms" validate:"required,oneof=1 2 3 4 5 6"`
	Turnaround    string `json:"turnaround" validate:"required,oneof=4w 3w 2w 1w custom"`
	HotelOption   string `json:"hotel_option" validate:"omitempty,oneof=bash_pays venue_provides"`
	MealsProvided bool   `json:"meals_provided"`
}

func (r SelectionsRequest) toInput() pricing.Input {
	return pricing.Input{
		Location:      pricing.Location(r.Location),
		Days:          r.Days,
		Rooms:         r.Rooms,
		Turnaround:    pricing.Turnaround(r.Turnaround),
		Hotel:         pricing.HotelOption(r.HotelOption),
		MealsProvided: r.MealsProvided,
	}
}

// ContactRequest mirrors the contact and event fields of the form. The
// submission gate itself lives in the quotes package; struct tags only bound
// obviously broken payloads.
type ContactRequest struct {
	Name       string `json:"name" validate:"omitempty,max=200"`
	Email      string `json:"email" validate:"omitempty,max=320"`
	Phone      string `json:"phone" validate:"omitempty,max=40"`
	EventTitle string `json:"event_title" validate:"omitempty,max=300"`
	EventURL   string `json:"event_url" validate:"omitempty,max=2048"`
	Notes      string `json:"notes" validate:"omitempty,max=5000"`
	EventMonth int    `json:"event_month" validate:"omitempty,min=1,max=12"`
	EventDay   int    `json:"event_day" validate:"omitempty,min=1,max=31"`
	EventYear  int    `json:"event_year" validate:"omitempty,min=2024,max=2100"`
}

func (r ContactRequest) toContact() quotes.ContactInfo {
	return quotes.ContactInfo{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		EventTitle: r.EventTitle,
		EventURL:   r.EventURL,
		Notes:      r.Notes,
		EventMonth: r.EventMonth,
		EventDay:   r.EventDay,
		EventYear:  r.EventYear,
	}
}

type validateRequest struct {
	Contact ContactRequest `json:"contact"`
	Touched []string       `json:"touched" validate:"omitempty,dive,oneof=email phone event_title"`
}

type submitRequest struct {
	Session    string            `json:"session" validate:"required,max=128"`
	Selections SelectionsRequest `json:"selections"`
	Contact    ContactRequest    `json:"contact"`
}

type selectionsResponse struct {
	Location      string `json:"location"`
	Days          int    `json:"days"`
	Rooms         int    `json:"rooms"`
	Turnaround    string `json:"turnaround"`
	HotelOption   string `json:"hotel_option"`
	MealsProvided bool   `json:"meals_provided"`
}

type priceResponse struct {
	Selections selectionsResponse `json:"selections"`

	OutOfScope             bool `json:"out_of_scope"`
	Operators              int  `json:"operators"`
	Videos                 int  `json:"videos"`
	EstimatedPresentations int  `json:"estimated_presentations"`

	VideoCostCents       int64 `json:"video_cost_cents"`
	OperatorCostCents    int64 `json:"operator_cost_cents"`
	AirfareCostCents     int64 `json:"airfare_cost_cents"`
	HotelCostCents       int64 `json:"hotel_cost_cents"`
	PerDiemCostCents     int64 `json:"per_diem_cost_cents"`
	LuggageCostCents     int64 `json:"luggage_cost_cents"`
	GroundTransportCents int64 `json:"ground_transport_cents"`
	SubtotalCents        int64 `json:"subtotal_cents"`

	MarkupMultiplier string `json:"markup_multiplier"`
	Total            string `json:"total"`
	DisplayPrice     string `json:"display_price"`
}

func newPriceResponse(in pricing.Input, b pricing.Breakdown) priceResponse {
	return priceResponse{
		Selections: selectionsResponse{
			Location:      string(in.Location),
			Days:          in.Days,
			Rooms:         in.Rooms,
			Turnaround:    string(in.Turnaround),
			HotelOption:   string(in.Hotel),
			MealsProvided: in.MealsProvided,
		},
		OutOfScope:             b.OutOfScope,
		Operators:              b.Operators,
		Videos:                 b.Videos,
		EstimatedPresentations: b.EstimatedPresentations,
		VideoCostCents:         b.VideoCostCents,
		OperatorCostCents:      b.OperatorCostCents,
		AirfareCostCents:       b.AirfareCostCents,
		HotelCostCents:         b.HotelCostCents,
		PerDiemCostCents:       b.PerDiemCostCents,
		LuggageCostCents:       b.LuggageCostCents,
		GroundTransportCents:   b.GroundTransportCents,
		SubtotalCents:          b.SubtotalCents,
		MarkupMultiplier:       b.MarkupMultiplier.String(),
		Total:                  b.Total.StringFixed(2),
		DisplayPrice:           b.DisplayPrice(),
	}
}

type validateResponse struct {
	Errors    map[string]string `json:"errors"`
	CanSubmit bool              `json:"can_submit"`
}

type submitResponse struct {
	Session      string `json:"session"`
	Strategy     string `json:"strategy"`
	Dispatched   bool   `json:"dispatched"`
	MessageID    string `json:"message_id,omitempty"`
	MailtoURI    string `json:"mailto_uri,omitempty"`
	DisplayPrice string `json:"display_price"`
}

type confirmationResponse struct {
	Confirmed bool `json:"confirmed"`
}

// PriceQuote computes the full breakdown for a selection snapshot.
func PriceQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var req SelectionsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		normalized, breakdown := svc.Price(r.Context(), req.toInput())
		responses.WriteSuccess(w, newPriceResponse(normalized, breakdown))
	}
}

// ValidateContact reports gate errors for the touched fields.
func ValidateContact(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var req validateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result := svc.Validate(req.Contact.toContact(), req.Touched)
		responses.WriteSuccess(w, validateResponse{Errors: result.Errors, CanSubmit: result.CanSubmit})
	}
}

// SubmitQuote dispatches a completed quote request through the configured
// handoff strategy.
func SubmitQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var req submitRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), quotes.SubmitInput{
			Session:   validators.SanitizeString(req.Session, 128),
			Selection: req.Selections.toInput(),
			Contact:   req.Contact.toContact(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, submitResponse{
			Session:      req.Session,
			Strategy:     result.Receipt.Strategy,
			Dispatched:   result.Receipt.Dispatched,
			MessageID:    result.Receipt.MessageID,
			MailtoURI:    result.Receipt.MailtoURI,
			DisplayPrice: result.DisplayPrice,
		})
	}
}

// QuoteConfirmation reports whether the hosting page has acknowledged the
// session's submission.
func QuoteConfirmation(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		session := strings.TrimSpace(r.URL.Query().Get("session"))
		if session == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session query parameter is required"))
			return
		}

		confirmed, err := svc.Confirmation(r.Context(), session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, confirmationResponse{Confirmed: confirmed})
	}
}
