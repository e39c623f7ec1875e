package overtime

import "fmt"

// Category selects the tier table and whether the work window is netted out.
type Category string

const (
	Weekday Category = "weekday"
	RestDay Category = "rest_day"
	Holiday Category = "holiday"
)

// Categories lists every category in display order.
var Categories = []Category{Weekday, RestDay, Holiday}

func (c Category) Valid() bool {
	switch c {
	case Weekday, RestDay, Holiday:
		return true
	}
	return false
}

func (c Category) rank() int {
	switch c {
	case Weekday:
		return 0
	case RestDay:
		return 1
	case Holiday:
		return 2
	}
	return 3
}

func (c Category) Label() string {
	switch c {
	case Weekday:
		return "Weekday"
	case RestDay:
		return "Rest day"
	case Holiday:
		return "Holiday"
	}
	return string(c)
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", s)}
	}
	return c, nil
}
