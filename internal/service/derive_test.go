package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dirm02/course-admin-api/internal/models"
)

func TestCourseLength(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"same day", "2024-03-01", "2024-03-01", 0},
		{"one day apart", "2024-03-01", "2024-03-02", 1},
		{"week long", "2024-03-01", "2024-03-08", 7},
		{"reversed dates use absolute difference", "2024-03-08", "2024-03-01", 7},
		{"across month boundary", "2024-01-30", "2024-02-02", 3},
		{"partial second day rounds up", "2024-03-01T09:00:00Z", "2024-03-02T10:30:00Z", 2},
		{"unparseable start", "not-a-date", "2024-03-02", 0},
		{"unparseable end", "2024-03-01", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CourseLength(tc.start, tc.end))
		})
	}
}

func TestCurrencySymbolKnownCodes(t *testing.T) {
	assert.Equal(t, "$", CurrencySymbol("USD"))
	assert.Equal(t, "€", CurrencySymbol("EUR"))
	assert.Equal(t, "£", CurrencySymbol("GBP"))
	assert.Equal(t, "₩", CurrencySymbol("KRW"))
	assert.Equal(t, "kr", CurrencySymbol("SEK"))
}

func TestCurrencySymbolWholeTableResolves(t *testing.T) {
	for code, symbol := range currencySymbols {
		assert.Equal(t, symbol, CurrencySymbol(code))
	}
}

func TestCurrencySymbolUnknownCodePassesThrough(t *testing.T) {
	assert.Equal(t, "XYZ", CurrencySymbol("XYZ"))
	assert.Equal(t, "", CurrencySymbol(""))
	// Lookup is exact-match: lowercase is not a known code.
	assert.Equal(t, "usd", CurrencySymbol("usd"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-03-05", FormatDate("2024-03-05"))
	assert.Equal(t, "2024-03-05", FormatDate("2024-03-05T14:30:00Z"))
	assert.Equal(t, "garbage", FormatDate("garbage"))
}

func TestDecorateRecomputesDerivedFields(t *testing.T) {
	course := models.Course{
		StartDate: "2024-06-01",
		EndDate:   "2024-06-15",
		Currency:  "EUR",
		// Stale derived values that must be overwritten.
		LengthDays:     999,
		CurrencySymbol: "bogus",
	}
	Decorate(&course)
	assert.Equal(t, 14, course.LengthDays)
	assert.Equal(t, "€", course.CurrencySymbol)
}
