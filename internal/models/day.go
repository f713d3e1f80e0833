package models

import "time"

type Day struct {
	ID          int       `json:"id"`
	PID         int       `json:"pid"`
	Day         time.Time `json:"day"`
	DayTime     time.Time `json:"day_time"`
	SortDayTime time.Time `json:"sort_day_time"`
	SameDayTime time.Time `json:"same_day_time"`
	Event       *Event    `json:"event,omitempty"`
}

// DayInRange is a single calendar entry for month views.
type DayInRange struct {
	EventID int       `json:"event_id"`
	Title   string    `json:"title"`
	Day     time.Time `json:"day"`
}

type ListType string

const (
	ListTypeList     ListType = "list"
	ListTypeLatest   ListType = "listLatest"
	ListTypeToday    ListType = "listToday"
	ListTypeThisWeek ListType = "listThisWeek"
	ListTypeRange    ListType = "listRange"
)

// DayFilter restricts day listings.
type DayFilter struct {
	ListType    ListType
	Organizer   int
	Categories  []int
	StoragePIDs []int
	From        time.Time
	To          time.Time
	MergeEvents bool
	Limit       int
}

// Search holds the criteria of the search form.
type Search struct {
	Search       string    `json:"search" validate:"omitempty,max=100"`
	MainCategory int       `json:"main_category"`
	SubCategory  int       `json:"sub_category"`
	EventBegin   time.Time `json:"event_begin"`
	EventEnd     time.Time `json:"event_end"`
	Location     int       `json:"location"`
	FreeEntry    bool      `json:"free_entry"`
}

// Midnight truncates t to the start of its day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateRange returns the half-open range [from, to) covered by a list type.
// A zero to means the range is open-ended.
func DateRange(listType ListType, now time.Time) (from, to time.Time) {
	today := Midnight(now)

	switch listType {
	case ListTypeToday:
		return today, today.AddDate(0, 0, 1)
	case ListTypeThisWeek:
		// monday is the first day of the week
		offset := (int(today.Weekday()) + 6) % 7
		monday := today.AddDate(0, 0, -offset)
		return monday, monday.AddDate(0, 0, 7)
	case ListTypeRange:
		return today, today.AddDate(0, 0, 28)
	default:
		return today, time.Time{}
	}
}
