// Package ticket decodes fixed-width airline tickets of the form
// YYYYMMDDDEPARRRRS[FFFF]: travel date, departure and arrival airport
// codes, a two-digit row, a seat letter and an optional frequent-flyer
// number.
package ticket

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	yearAt      = 0
	monthAt     = 4
	dayAt       = 6
	departureAt = 8
	arrivalAt   = 11
	rowAt       = 14
	seatAt      = 16
	ffnAt       = 17

	shortLen = ffnAt
	longLen  = ffnAt + 4
)

var (
	ErrFormat   = errors.New("invalid ticket format")
	ErrSameSeat = errors.New("tickets hold the same seat")
)

// SeatType classifies a seat letter.
type SeatType string

const (
	Window  SeatType = "window"
	Middle  SeatType = "middle"
	Aisle   SeatType = "aisle"
	Invalid SeatType = "invalid"
)

// Ticket is a decoded ticket. Date parts are kept as numbers and are not
// checked against the calendar; see ValidDate.
type Ticket struct {
	Year      int
	Month     int
	Day       int
	Departure string
	Arrival   string
	Row       int
	Seat      byte
	// FFN is empty or four digits.
	FFN string
}

// ValidFormat reports whether s has the ticket layout.
func ValidFormat(s string) bool {
	switch len(s) {
	case shortLen:
	case longLen:
		if !digits(s[ffnAt:longLen]) {
			return false
		}
	default:
		return false
	}
	return digits(s[yearAt:departureAt]) &&
		letters(s[departureAt:rowAt]) &&
		digits(s[rowAt:seatAt])
}

// Parse decodes s.
func Parse(s string) (Ticket, error) {
	if !ValidFormat(s) {
		return Ticket{}, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	t := Ticket{
		Year:      atoi(s[yearAt:monthAt]),
		Month:     atoi(s[monthAt:dayAt]),
		Day:       atoi(s[dayAt:departureAt]),
		Departure: s[departureAt:arrivalAt],
		Arrival:   s[arrivalAt:rowAt],
		Row:       atoi(s[rowAt:seatAt]),
		Seat:      s[seatAt],
		FFN:       s[ffnAt:],
	}
	return t, nil
}

// MustParse is like Parse but panics on a malformed ticket.
func MustParse(s string) Ticket {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String encodes the ticket back into its fixed-width form.
func (t Ticket) String() string {
	return fmt.Sprintf("%s%s%s%02d%c%s", t.Date(), t.Departure, t.Arrival, t.Row, t.Seat, t.FFN)
}

// Date returns the travel date as YYYYMMDD.
func (t Ticket) Date() string {
	return fmt.Sprintf("%04d%02d%02d", t.Year, t.Month, t.Day)
}

// ValidSeat reports whether the row lies in [first, last] and the seat is
// one of A to F.
func (t Ticket) ValidSeat(first, last int) bool {
	return first <= t.Row && t.Row <= last && t.Seat >= 'A' && t.Seat <= 'F'
}

// ValidFFN reports whether the frequent-flyer number is absent or its
// first three digits sum, mod 10, to the fourth.
func (t Ticket) ValidFFN() bool {
	if t.FFN == "" {
		return true
	}
	if len(t.FFN) != 4 || !digits(t.FFN) {
		return false
	}
	sum := int(t.FFN[0]-'0') + int(t.FFN[1]-'0') + int(t.FFN[2]-'0')
	return sum%10 == int(t.FFN[3]-'0')
}

// ValidDate reports whether the date exists in the Gregorian calendar.
func (t Ticket) ValidDate() bool {
	if t.Month < 1 || t.Month > 12 || t.Day < 1 {
		return false
	}
	return t.Day <= daysIn(t.Year, t.Month)
}

func daysIn(year, month int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// Visits reports whether the ticket departs from or arrives at airport.
func (t Ticket) Visits(airport string) bool {
	return t.Departure == airport || t.Arrival == airport
}

// SeatType classifies the seat.
func (t Ticket) SeatType() SeatType {
	switch t.Seat {
	case 'A', 'F':
		return Window
	case 'B', 'E':
		return Middle
	case 'C', 'D':
		return Aisle
	default:
		return Invalid
	}
}

// WithSeat returns a copy of t moved to row and seat.
func (t Ticket) WithSeat(row int, seat byte) (Ticket, error) {
	if row < 0 || row > 99 {
		return Ticket{}, fmt.Errorf("%w: row %d", ErrFormat, row)
	}
	t.Row, t.Seat = row, seat
	return t, nil
}

// WithDate returns a copy of t rebooked on the given date.
func (t Ticket) WithDate(year, month, day int) (Ticket, error) {
	if year < 0 || year > 9999 || month < 0 || month > 99 || day < 0 || day > 99 {
		return Ticket{}, fmt.Errorf("%w: date %d-%d-%d", ErrFormat, year, month, day)
	}
	t.Year, t.Month, t.Day = year, month, day
	return t, nil
}

// Connecting reports whether b leaves from a's arrival airport on a's date.
func Connecting(a, b Ticket) bool {
	return a.Arrival == b.Departure && a.Date() == b.Date()
}

// Adjacent reports whether a and b sit side by side: same row and the same
// half of the cabin (A-C or D-F). It returns ErrSameSeat when both tickets
// hold the same seat in the same row.
func Adjacent(a, b Ticket) (bool, error) {
	if a.Row != b.Row {
		return false, nil
	}
	if a.Seat == b.Seat {
		return false, ErrSameSeat
	}
	return side(a.Seat) != 0 && side(a.Seat) == side(b.Seat), nil
}

func side(seat byte) int {
	switch seat {
	case 'A', 'B', 'C':
		return 1
	case 'D', 'E', 'F':
		return 2
	}
	return 0
}

// Behind reports whether a sits directly behind b: the same seat letter,
// one row further back.
func Behind(a, b Ticket) bool {
	return a.Seat == b.Seat && a.Row == b.Row+1
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func letters(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return len(s) > 0
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
