package notify

import "time"

// TemplateUnit is the relative-time unit a template's offset is expressed in.
type TemplateUnit string

const (
	UnitHours TemplateUnit = "hours"
	UnitDays  TemplateUnit = "days"
)

// Template describes one of the canned reminder kinds the app offers.
type Template struct {
	Key          string
	Label        string
	DefaultTitle string
	Unit         TemplateUnit
}

// Templates are the canonical reminder templates, keyed by template key.
var Templates = map[string]Template{
	"RACK_IN_DAYS": {
		Key:          "RACK_IN_DAYS",
		Label:        "Rack in X days",
		DefaultTitle: "Rack to secondary",
		Unit:         UnitDays,
	},
	"NUTRIENT_IN_HOURS": {
		Key:          "NUTRIENT_IN_HOURS",
		Label:        "Nutrient addition in X hours",
		DefaultTitle: "Add nutrient",
		Unit:         UnitHours,
	},
	"DEGAS_IN_HOURS": {
		Key:          "DEGAS_IN_HOURS",
		Label:        "Degas in X hours",
		DefaultTitle: "Degas",
		Unit:         UnitHours,
	},
	"STABILIZE_IN_DAYS": {
		Key:          "STABILIZE_IN_DAYS",
		Label:        "Stabilize in X days",
		DefaultTitle: "Stabilize",
		Unit:         UnitDays,
	},
	"BOTTLE_IN_DAYS": {
		Key:          "BOTTLE_IN_DAYS",
		Label:        "Bottle in X days",
		DefaultTitle: "Bottle",
		Unit:         UnitDays,
	},
}

// LookupTemplate returns the template for key, if known.
func LookupTemplate(key string) (Template, bool) {
	template, ok := Templates[key]
	return template, ok
}

// ScheduledForIn resolves a template-relative offset ("rack in 14 days") to an
// absolute epoch-millisecond timestamp counted from now.
func ScheduledForIn(template Template, amount int, now time.Time) int64 {
	switch template.Unit {
	case UnitHours:
		return now.Add(time.Duration(amount) * time.Hour).UnixMilli()
	default:
		return now.Add(time.Duration(amount) * 24 * time.Hour).UnixMilli()
	}
}
