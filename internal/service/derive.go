package service

import (
	"math"
	"time"

	"github.com/dirm02/course-admin-api/internal/models"
)

// currencySymbols maps ISO 4217 codes to display symbols. Codes without an
// entry fall back to the raw code.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"JPY": "¥",
	"GBP": "£",
	"AUD": "A$",
	"CAD": "C$",
	"CHF": "CHF",
	"CNY": "¥",
	"SEK": "kr",
	"NZD": "NZ$",
	"MXN": "Mex$",
	"SGD": "S$",
	"HKD": "HK$",
	"NOK": "kr",
	"KRW": "₩",
	"TRY": "₺",
	"RUB": "₽",
	"INR": "₹",
	"BRL": "R$",
	"ZAR": "R",
	"DKK": "kr",
	"PLN": "zł",
	"THB": "฿",
	"MYR": "RM",
	"IDR": "Rp",
	"CZK": "Kč",
	"HUF": "Ft",
	"AED": "د.إ",
	"SAR": "﷼",
	"ILS": "₪",
	"PHP": "₱",
	"COP": "COL$",
	"CLP": "CLP$",
	"PEN": "S/",
	"VND": "₫",
	"NGN": "₦",
	"BDT": "৳",
	"PKR": "₨",
	"EGP": "£",
	"KWD": "KD",
	"QAR": "QR",
	"OMR": "OMR",
	"BHD": "BD",
	"JOD": "JD",
	"LBP": "ل.ل",
	"MAD": "MAD",
	"DZD": "DA",
	"TND": "DT",
	"LYD": "LYD",
	"IQD": "IQD",
	"MZN": "MT",
}

// CurrencySymbol returns the display symbol for a currency code, or the code
// itself when no mapping exists.
func CurrencySymbol(code string) string {
	if symbol, ok := currencySymbols[code]; ok {
		return symbol
	}
	return code
}

const dateLayout = "2006-01-02"

// parseDate accepts the upstream's date-only form and the RFC 3339 timestamps
// some records carry.
func parseDate(raw string) (time.Time, bool) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// CourseLength computes a course's duration in whole days, rounded up. A
// same-day course has length 0; spanning any part of another day counts as
// a full day. Unparseable dates yield 0.
func CourseLength(startDate, endDate string) int {
	start, ok := parseDate(startDate)
	if !ok {
		return 0
	}
	end, ok := parseDate(endDate)
	if !ok {
		return 0
	}

	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// FormatDate normalises a submitted date to zero-padded YYYY-MM-DD. Values
// that fail to parse pass through unchanged, mirroring the no-validation
// submission policy.
func FormatDate(raw string) string {
	if t, ok := parseDate(raw); ok {
		return t.Format(dateLayout)
	}
	return raw
}

// Decorate recomputes the derived fields on a freshly loaded course. Stored
// values are never trusted.
func Decorate(course *models.Course) {
	course.LengthDays = CourseLength(course.StartDate, course.EndDate)
	course.CurrencySymbol = CurrencySymbol(course.Currency)
}
