package quotes

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Gate field names as the presentation layer reports them. Only these three
// block submission; everything else on the form is optional.
const (
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldEventTitle = "event_title"
)

const (
	minPhoneDigits         = 7
	defaultEventOffsetDays = 75
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var monthLabels = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ContactInfo is the raw contact and event data collected by the form. It is
// read once at submit time and never persisted.
type ContactInfo struct {
	Name       string
	Email      string
	Phone      string
	EventTitle string
	EventURL   string
	Notes      string

	EventMonth int
	EventDay   int
	EventYear  int
}

// IsValidEmail accepts anything shaped local@domain.tld. Deliverability is
// not checked here.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// IsValidPhone counts digits and ignores every other character, so formatted
// numbers like "(702) 555-1234" pass.
func IsValidPhone(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= minPhoneDigits
}

func isNonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Validate returns a message per failing gate field. An empty map means the
// contact clears the submission gate.
func (c ContactInfo) Validate() map[string]string {
	errs := map[string]string{}
	if !IsValidEmail(c.Email) {
		errs[FieldEmail] = "enter a valid email address"
	}
	if !IsValidPhone(c.Phone) {
		errs[FieldPhone] = fmt.Sprintf("enter a phone number with at least %d digits", minPhoneDigits)
	}
	if !isNonEmpty(c.EventTitle) {
		errs[FieldEventTitle] = "enter an event title"
	}
	return errs
}

// CanSubmit reports whether all three gate fields pass.
func (c ContactInfo) CanSubmit() bool {
	return len(c.Validate()) == 0
}

// ApplyDefaultEventDate fills an unset event date with the typical booking
// lead time of 75 days out.
func (c *ContactInfo) ApplyDefaultEventDate(now time.Time) {
	if c.EventMonth != 0 || c.EventDay != 0 || c.EventYear != 0 {
		return
	}
	d := now.AddDate(0, 0, defaultEventOffsetDays)
	c.EventYear = d.Year()
	c.EventMonth = int(d.Month())
	c.EventDay = d.Day()
}

// EventDateLabel renders the event start date the way it appears in the quote
// summary, e.g. "September 12, 2026".
func (c ContactInfo) EventDateLabel() string {
	return fmt.Sprintf("%s %d, %d", monthLabel(c.EventMonth), c.EventDay, c.EventYear)
}

func monthLabel(month int) string {
	if month >= 1 && month <= 12 {
		return monthLabels[month-1]
	}
	return fmt.Sprintf("%d", month)
}
