// Package units converts stored amounts into the user's preferred display
// units. Conversion is presentation-only; values are stored in the unit the
// user entered.
package units

import (
	"fmt"
	"math"
	"strings"
)

// Preference selects which unit family amounts are displayed in.
type Preference string

const (
	PreferenceUS     Preference = "US"
	PreferenceMetric Preference = "metric"
)

const (
	lbToKG  = 0.45359237
	ozToG   = 28.349523125
	galToL  = 3.785411784
	decimal = 2
)

// Amount is a converted value/unit pair ready for display.
type Amount struct {
	Value float64
	Unit  string
}

// ConvertForDisplay converts value between the US and metric families using
// fixed factors, rounding to two decimals. Unrecognized units pass through
// unchanged apart from rounding.
func ConvertForDisplay(value float64, unit string, pref Preference) Amount {
	normalized := strings.ToLower(strings.TrimSpace(unit))

	if pref == PreferenceMetric {
		switch normalized {
		case "lb":
			return Amount{Value: round(value * lbToKG), Unit: "kg"}
		case "oz":
			return Amount{Value: round(value * ozToG), Unit: "g"}
		case "gal":
			return Amount{Value: round(value * galToL), Unit: "L"}
		}
	} else {
		switch normalized {
		case "kg":
			return Amount{Value: round(value / lbToKG), Unit: "lb"}
		case "g":
			return Amount{Value: round(value / ozToG), Unit: "oz"}
		case "l":
			return Amount{Value: round(value / galToL), Unit: "gal"}
		}
	}

	return Amount{Value: round(value), Unit: unit}
}

// FormatAmount renders a nullable stored amount as "0.91 kg", or "" when
// either part is missing.
func FormatAmount(value *float64, unit *string, pref Preference) string {
	if value == nil || unit == nil || *unit == "" {
		return ""
	}
	converted := ConvertForDisplay(*value, *unit, pref)
	return fmt.Sprintf("%v %s", converted.Value, converted.Unit)
}

func round(value float64) float64 {
	factor := math.Pow(10, decimal)
	return math.Round(value*factor) / factor
}
