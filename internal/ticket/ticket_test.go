package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	got, err := Parse("20230915YYZYEG12F1236")
	require.NoError(t, err)
	assert.Equal(t, Ticket{
		Year: 2023, Month: 9, Day: 15,
		Departure: "YYZ", Arrival: "YEG",
		Row: 12, Seat: 'F', FFN: "1236",
	}, got)
	assert.Equal(t, "20230915", got.Date())
	assert.Equal(t, "20230915YYZYEG12F1236", got.String())

	short := MustParse("20230915ORDYEG08B")
	assert.Equal(t, "", short.FFN)
	assert.Equal(t, "20230915ORDYEG08B", short.String())
}

func TestParse_BadFormat(t *testing.T) {
	_, err := Parse("ABC41020YYZYEG12C1236")
	assert.ErrorIs(t, err, ErrFormat)
	assert.Panics(t, func() { MustParse("2023") })
}

func TestValidFormat(t *testing.T) {
	tests := []struct {
		given    string
		expected bool
	}{
		{given: "20241020YYZYEG12C1236", expected: true},
		{given: "20241020YYZYEG12C", expected: true},
		{given: "20230915YYZYEG1241236", expected: true},
		{given: "20241020YYZYEG12C12361236", expected: false},
		{given: "ABC41020YYZYEG12C1236", expected: false},
		{given: "20241020YY1YEG12C1236", expected: false},
		{given: "20241020YYZYEG1XC", expected: false},
		{given: "20241020YYZYEG12C12A4", expected: false},
		{given: "20241020YYZYEG12C12", expected: false},
		{given: "", expected: false},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, ValidFormat(test.given), test.given)
	}
}

func TestTicket_ValidSeat(t *testing.T) {
	tests := []struct {
		given    string
		expected bool
	}{
		{given: "20230915YYZYEG12F1236", expected: true},
		{given: "20230915YYZYEG42F1236", expected: false},
		{given: "20230915YYZYEG21Q1236", expected: false},
		{given: "20230915YYZYEG01A", expected: true},
		{given: "20230915YYZYEG00A", expected: false},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, MustParse(test.given).ValidSeat(1, 30), test.given)
	}
}

func TestTicket_ValidFFN(t *testing.T) {
	tests := []struct {
		given    string
		expected bool
	}{
		{given: "20230915YYZYEG21Q1236", expected: true},
		{given: "20230915YYZYEG21Q1337", expected: true},
		{given: "20230915YYZYEG21Q", expected: true},
		{given: "20230915YYZYEG21Q1235", expected: false},
		{given: "20230915YYZYEG21Q9990", expected: false},
		{given: "20230915YYZYEG21Q9997", expected: true},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, MustParse(test.given).ValidFFN(), test.given)
	}
}

func TestTicket_ValidDate(t *testing.T) {
	tests := []struct {
		given    string
		expected bool
	}{
		{given: "20230915YYZYEG21Q1337", expected: true},
		{given: "20180229YYZYEG21Q", expected: false},
		{given: "20120229YYZYEG21Q", expected: true},
		{given: "16000229YYZYEG21Q", expected: true},
		{given: "14000229YYZYEG21Q1236", expected: false},
		{given: "20230931YYZYEG21Q", expected: false},
		{given: "20231231YYZYEG21Q", expected: true},
		{given: "20231301YYZYEG21Q", expected: false},
		{given: "20230100YYZYEG21Q", expected: false},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, MustParse(test.given).ValidDate(), test.given)
	}
}

func TestTicket_Visits(t *testing.T) {
	assert.True(t, MustParse("20230915YYZYEG12F1236").Visits("YEG"))
	assert.True(t, MustParse("20230915YEGYYZ12F1236").Visits("YEG"))
	assert.False(t, MustParse("20230915YYZYEG12F1236").Visits("YVR"))
}

func TestConnecting(t *testing.T) {
	tests := []struct {
		a, b     string
		expected bool
	}{
		{a: "20230915YYZYEG12C1236", b: "20230915YEGYYZ12C1236", expected: true},
		{a: "20230915YYZYEG12C1236", b: "20230915YYZYEG12C1236", expected: false},
		{a: "20230915YYZYEG12C1236", b: "20230916YEGYYZ12C1236", expected: false},
		{a: "20230915YYZYEG12C1236", b: "20230916YYZYEG12C1236", expected: false},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, Connecting(MustParse(test.a), MustParse(test.b)), test.a+" "+test.b)
	}
}

func TestTicket_SeatType(t *testing.T) {
	tests := []struct {
		given    string
		expected SeatType
	}{
		{given: "20230915YYZYEG12F1236", expected: Window},
		{given: "20230915YYZYEG12A", expected: Window},
		{given: "20230915YYZYEG08B", expected: Middle},
		{given: "20230915YYZYEG08E", expected: Middle},
		{given: "20230915YYZYEG12C1236", expected: Aisle},
		{given: "20230915YYZYEG12D", expected: Aisle},
		{given: "20230915YYZYEG1241236", expected: Invalid},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, MustParse(test.given).SeatType(), test.given)
	}
}

func TestAdjacent(t *testing.T) {
	tests := []struct {
		a, b     string
		expected bool
		err      error
	}{
		{a: "20230915YYZYEG12C1236", b: "20230915YYZYEG12A", expected: true},
		{a: "20230915YYZYEG12E1236", b: "20230915YYZYEG12A", expected: false},
		{a: "20230915YYZYEG12D", b: "20230915YYZYEG12F", expected: true},
		{a: "20230915YYZYEG11C1236", b: "20230915YYZYEG12A", expected: false},
		{a: "20230915YYZYEG12A1236", b: "20230915YYZYEG12A", err: ErrSameSeat},
	}
	for _, test := range tests {
		got, err := Adjacent(MustParse(test.a), MustParse(test.b))
		assert.ErrorIs(t, err, test.err)
		if test.err == nil {
			assert.NoError(t, err)
		}
		assert.Equal(t, test.expected, got, test.a+" "+test.b)
	}
}

func TestBehind(t *testing.T) {
	tests := []struct {
		a, b     string
		expected bool
	}{
		{a: "20230915YYZYEG12A1236", b: "20230915YYZYEG12A", expected: false},
		{a: "20230915YYZYEG12A1236", b: "20230915YYZYEG11A", expected: true},
		{a: "20230915YYZYEG99A9936", b: "20230915YYZYEG98A", expected: true},
		{a: "20230915YYZYEG12B", b: "20230915YYZYEG11A", expected: false},
		{a: "20230915YYZYEG11A", b: "20230915YYZYEG12A", expected: false},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, Behind(MustParse(test.a), MustParse(test.b)), test.a+" "+test.b)
	}
}

func TestTicket_WithSeat(t *testing.T) {
	moved, err := MustParse("20230915YYZYEG99A9936").WithSeat(1, 'A')
	require.NoError(t, err)
	assert.Equal(t, "20230915YYZYEG01A9936", moved.String())

	moved, err = MustParse("20230915YYZYEG99A").WithSeat(5, 'F')
	require.NoError(t, err)
	assert.Equal(t, "20230915YYZYEG05F", moved.String())

	_, err = MustParse("20230915YYZYEG99A").WithSeat(100, 'F')
	assert.ErrorIs(t, err, ErrFormat)
}

func TestTicket_WithDate(t *testing.T) {
	original := MustParse("20230915YYZYEG99A9936")
	moved, err := original.WithDate(2045, 5, 15)
	require.NoError(t, err)
	assert.Equal(t, "20450515YYZYEG99A9936", moved.String())
	assert.Equal(t, "20230915YYZYEG99A9936", original.String())

	moved, err = MustParse("20230915YYZYEG99A").WithDate(2024, 12, 15)
	require.NoError(t, err)
	assert.Equal(t, "20241215YYZYEG99A", moved.String())

	_, err = original.WithDate(12345, 1, 1)
	assert.ErrorIs(t, err, ErrFormat)
}
