package models

import "time"

type EventType string

const (
	EventTypeSingle    EventType = "single"
	EventTypeDuration  EventType = "duration"
	EventTypeRecurring EventType = "recurring"
)

// Xth bitmask values select the nth weekday of a month.
const (
	XthFirst  = 1
	XthSecond = 2
	XthThird  = 4
	XthFourth = 8
	XthFifth  = 16
)

// Weekday bitmask values, monday first.
const (
	WeekdayMonday    = 1
	WeekdayTuesday   = 2
	WeekdayWednesday = 4
	WeekdayThursday  = 8
	WeekdayFriday    = 16
	WeekdaySaturday  = 32
	WeekdaySunday    = 64
)

type Event struct {
	ID           int         `json:"id"`
	PID          int         `json:"pid"`
	Hidden       bool        `json:"-"`
	EventType    EventType   `json:"event_type"`
	TopOfList    bool        `json:"top_of_list"`
	Title        string      `json:"title"`
	Teaser       string      `json:"teaser,omitempty"`
	Detail       string      `json:"detail,omitempty"`
	EventBegin   time.Time   `json:"event_begin"`
	EventEnd     time.Time   `json:"event_end,omitempty"`
	RecurringEnd time.Time   `json:"recurring_end,omitempty"`
	Xth          int         `json:"xth,omitempty"`
	Weekday      int         `json:"weekday,omitempty"`
	EachWeeks    int         `json:"each_weeks,omitempty"`
	EachMonths   int         `json:"each_months,omitempty"`
	FreeEntry    bool        `json:"free_entry"`
	TicketLink   *Link       `json:"ticket_link,omitempty"`
	EventTime    *Time       `json:"event_time,omitempty"`
	Location     *Location   `json:"location,omitempty"`
	Organizers   []Organizer `json:"organizers,omitempty"`
	Categories   []Category  `json:"categories,omitempty"`
	Exceptions   []Exception `json:"exceptions,omitempty"`
}

// OrganizerIDs is used for writing the mm relation.
func (e *Event) OrganizerIDs() []int {
	ids := make([]int, 0, len(e.Organizers))
	for _, o := range e.Organizers {
		ids = append(ids, o.ID)
	}

	return ids
}

func (e *Event) CategoryIDs() []int {
	ids := make([]int, 0, len(e.Categories))
	for _, c := range e.Categories {
		ids = append(ids, c.ID)
	}

	return ids
}

// EventRecord is the (uid, pid) pair of a stored event.
type EventRecord struct {
	ID  int `json:"id"`
	PID int `json:"pid"`
}
