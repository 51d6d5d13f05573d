// Package format holds the number-to-text primitives shared by every feed:
// Korean large-unit scaling (조/억/백만/천), signed percentages and direction
// classes. Functions are pure and safe for concurrent use.
package format

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Unit thresholds. Amounts in the flow feeds arrive in 억 (1e8 KRW); program
// trading arrives in 백만 (1e6 KRW); share quantities arrive in shares.
const (
	JoThreshold       = 10000 // 억 per 조
	EokPerMillion     = 100   // 백만 per 억
	ThousandThreshold = 1000
)

const (
	UnitJo       = "조"
	UnitEok      = "억"
	UnitMillion  = "백만"
	UnitThousand = "천"
	UnitWon      = "원"
)

// Direction classes and arrows.
const (
	Up   = "up"
	Down = "dn"
	Flat = "fl"

	ArrowUp   = "▲"
	ArrowDown = "▼"
)

var (
	koPrinter = message.NewPrinter(language.Korean)
	enPrinter = message.NewPrinter(language.AmericanEnglish)

	decJo   = decimal.NewFromInt(JoThreshold)
	decEok  = decimal.NewFromInt(EokPerMillion)
	decThou = decimal.NewFromInt(ThousandThreshold)
)

// dec converts v to a decimal; NaN and infinities become zero.
func dec(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// Round rounds half up, matching the dashboard's integer rounding.
func Round(v float64) float64 { return math.Floor(v + 0.5) }

// Round1 rounds to one decimal place, half up.
func Round1(v float64) float64 { return math.Floor(v*10+0.5) / 10 }

// Fixed renders v with exactly places fraction digits.
func Fixed(v float64, places int32) string {
	return dec(v).StringFixed(places)
}

// Plain renders v in its shortest form ("0.35", "12", "-1.5").
func Plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Grouped renders v with ko-KR digit grouping and at most three fraction digits.
func Grouped(v float64) string {
	return koPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// GroupedFixed renders v with en-US digit grouping and exactly places fraction digits.
func GroupedFixed(v float64, places int) string {
	return enPrinter.Sprint(number.Decimal(v, number.Scale(places)))
}

// Eok scales a non-negative 억 amount: "1.5조" at or above 10,000, else "3,400억".
func Eok(abs float64) string {
	abs = math.Abs(abs)
	if abs >= JoThreshold {
		return dec(abs).Div(decJo).StringFixed(1) + UnitJo
	}
	return Grouped(abs) + UnitEok
}

// SignedEok is Eok with a leading sign; zero is "0".
func SignedEok(v float64) string {
	switch {
	case v > 0:
		return "+" + Eok(v)
	case v < 0:
		return "-" + Eok(v)
	default:
		return "0"
	}
}

// SignedAmount formats a signed 억 amount down to 백만 resolution:
// "+1.5조", "-3,400억", "+500백만". Zero is "0".
func SignedAmount(v float64) string {
	if v == 0 {
		return "0"
	}
	a := math.Abs(v)
	s := "+"
	if v < 0 {
		s = "-"
	}
	switch {
	case a >= JoThreshold:
		return s + dec(a).Div(decJo).StringFixed(1) + UnitJo
	case a >= 1:
		return s + Grouped(Round(a)) + UnitEok
	default:
		return s + dec(a).Mul(decEok).StringFixed(0) + UnitMillion
	}
}

// MarketCap formats a 억 market cap; zero or missing is "-".
func MarketCap(v float64) string {
	if v == 0 {
		return "-"
	}
	return Eok(v)
}

// ProgramNet formats a program-trading net amount given in 백만:
// "+12억" at or above 100 백만, else "-45백만".
func ProgramNet(v float64) string {
	a := math.Abs(v)
	s := "+"
	if v < 0 {
		s = "-"
	}
	if a >= EokPerMillion {
		return s + dec(a).Div(decEok).StringFixed(0) + UnitEok
	}
	return s + Plain(a) + UnitMillion
}

// Quantity formats a signed share quantity: "+12천", "-850"; zero is "-".
func Quantity(v float64) string {
	if v == 0 {
		return "-"
	}
	a := math.Abs(v)
	s := "+"
	if v < 0 {
		s = "-"
	}
	if a >= ThousandThreshold {
		return s + dec(a).Div(decThou).StringFixed(0) + UnitThousand
	}
	return s + Grouped(a)
}

// Percent renders "+1.2%", "-0.5%", "0.0%".
func Percent(v float64, places int32) string {
	if v > 0 {
		return "+" + Fixed(v, places) + "%"
	}
	return Fixed(v, places) + "%"
}

// PercentPoint renders a weight delta as "+0.35%p"; zero counts as positive.
func PercentPoint(v float64) string {
	if v >= 0 {
		return "+" + Plain(v) + "%p"
	}
	return Plain(v) + "%p"
}

// Direction maps the sign of v to up/dn/fl.
func Direction(v float64) string {
	switch {
	case v > 0:
		return Up
	case v < 0:
		return Down
	default:
		return Flat
	}
}

// Arrow maps the sign of v to ▲/▼ or "".
func Arrow(v float64) string {
	switch {
	case v > 0:
		return ArrowUp
	case v < 0:
		return ArrowDown
	default:
		return ""
	}
}

// SignalDirection maps an exchange prior-day signal code to a direction:
// 1 limit-up and 2 up are up, 4 limit-down and 5 down are down, else flat.
func SignalDirection(sig string) (class, arrow string) {
	switch sig {
	case "1", "2":
		return Up, ArrowUp
	case "4", "5":
		return Down, ArrowDown
	default:
		return Flat, ""
	}
}
