package model

// MealPlan maps a weekday name to the ordered list of recipe ids planned for
// that day. One plan per user, replaced wholesale on save — the client always
// sends the full plan.
//
// A planned id may refer to a recipe that has since been deleted; stale ids
// are tolerated in storage and filtered out at read time.
type MealPlan map[string][]int64

// Weekdays lists the valid plan keys, in display order.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

var weekdaySet = func() map[string]struct{} {
	s := make(map[string]struct{}, len(Weekdays))
	for _, d := range Weekdays {
		s[d] = struct{}{}
	}
	return s
}()

// IsWeekday reports whether name is one of the seven valid plan keys.
func IsWeekday(name string) bool {
	_, ok := weekdaySet[name]
	return ok
}
