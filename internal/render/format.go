package render

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	NotAvailable = "N/A"
	InvalidDate  = "Invalid Date"

	ColorOverBudget  = "#cf222e"
	ColorUnderBudget = "#1a7f37"

	// BudgetAlertPercent is the budget-used value the bar must exceed to turn red.
	BudgetAlertPercent = 80.0
)

// ToFixed formats x with exactly digits fractional digits. Exact ties round
// away from zero, which is how browsers format Number.prototype.toFixed and
// differs from strconv's round-half-even. Magnitudes of 1e21 and above fall
// back to Number, as toFixed does.
func ToFixed(x float64, digits int) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	}

	if math.Abs(x) >= 1e21 {
		return Number(x)
	}

	neg := x < 0
	if neg {
		x = -x
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	r := new(big.Rat).SetFloat64(x)
	r.Mul(r, new(big.Rat).SetInt(scale))
	r.Add(r, big.NewRat(1, 2))
	n := new(big.Int).Quo(r.Num(), r.Denom())

	s := n.String()
	if digits > 0 {
		if len(s) <= digits {
			s = strings.Repeat("0", digits-len(s)+1) + s
		}
		s = s[:len(s)-digits] + "." + s[len(s)-digits:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// Number renders a value the way string interpolation of a JSON number would:
// shortest round-trip digits, plain decimal between 1e-6 and 1e21 and
// exponent form such as 1e-7 or 1.5e+21 outside that range.
func Number(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}

	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}

	// mantissa digits and decimal exponent n, value = 0.digits * 10^n
	e := strconv.FormatFloat(x, 'e', -1, 64)
	mant, exp, _ := strings.Cut(e, "e")
	digits := strings.Replace(mant, ".", "", 1)
	pow, _ := strconv.Atoi(exp)
	n := pow + 1
	k := len(digits)

	switch {
	case k <= n && n <= 21:
		return sign + digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return sign + digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return sign + "0." + strings.Repeat("0", -n) + digits
	}

	expSign := "+"
	if n-1 < 0 {
		expSign = "-"
	}
	out := digits[:1]
	if k > 1 {
		out += "." + digits[1:]
	}
	return sign + out + "e" + expSign + strconv.Itoa(abs(n-1))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func Hours(h float64) string {
	return ToFixed(h, 1) + "h"
}

func Currency(amount float64) string {
	return "$" + ToFixed(amount, 2)
}

func RawCurrency(amount float64) string {
	return "$" + Number(amount)
}

func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Percent is a ratio expressed in percent and rounded to one decimal.
type Percent struct {
	Text  string
	Value float64
	Valid bool
}

// Ratio computes part / whole * 100. A zero whole yields an invalid Percent
// that renders as N/A.
func Ratio(part, whole float64) Percent {
	if whole == 0 {
		return Percent{Text: NotAvailable}
	}
	text := ToFixed(part/whole*100, 1)
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Percent{Text: NotAvailable}
	}
	return Percent{Text: text, Value: value, Valid: true}
}

// Label is the percentage as shown next to its caption.
func (p Percent) Label() string {
	if !p.Valid {
		return NotAvailable
	}
	return p.Text + "%"
}

// Width is the CSS width of a progress bar sized to the percentage.
func (p Percent) Width() string {
	if !p.Valid {
		return "0%"
	}
	return p.Text + "%"
}

// BudgetColor picks the usage bar colour. Exactly 80 is still under budget.
func BudgetColor(used Percent) string {
	if used.Valid && used.Value > BudgetAlertPercent {
		return ColorOverBudget
	}
	return ColorUnderBudget
}

var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp reads an ISO-8601 timestamp. Values without an offset are
// taken to be wall-clock time in loc, date-only values are UTC midnight.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// LocalDateTime renders a timestamp as e.g. "10/19/2026, 2:05:09 PM" in loc.
func LocalDateTime(s string, loc *time.Location) string {
	t, ok := ParseTimestamp(s, loc)
	if !ok {
		return InvalidDate
	}
	return t.In(loc).Format("1/2/2006, 3:04:05 PM")
}
