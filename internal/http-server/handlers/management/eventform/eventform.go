// Package eventform decodes the event form of the management actions.
package eventform

import (
	"errors"
	"events2/internal/lib/propertymapping"
	"events2/internal/models"
	"time"
)

type ExceptionRequest struct {
	ExceptionType    string    `json:"exception_type" validate:"required,oneof=Add Remove Time Info"`
	ExceptionDate    time.Time `json:"exception_date" validate:"required"`
	ExceptionDetails string    `json:"exception_details"`
	TimeBegin        string    `json:"time_begin" validate:"omitempty,datetime=15:04"`
	TimeEnd          string    `json:"time_end" validate:"omitempty,datetime=15:04"`
}

// Request is the submitted event. EventBegin, EventEnd and RecurringEnd are
// converted with the property mapping of the action.
type Request struct {
	PID          int                `json:"pid" validate:"required,min=1"`
	EventType    string             `json:"event_type" validate:"required,oneof=single duration recurring"`
	TopOfList    bool               `json:"top_of_list"`
	Title        string             `json:"title" validate:"required,max=255"`
	Teaser       string             `json:"teaser"`
	Detail       string             `json:"detail"`
	EventBegin   string             `json:"event_begin" validate:"required"`
	EventEnd     string             `json:"event_end"`
	RecurringEnd string             `json:"recurring_end"`
	Xth          int                `json:"xth" validate:"min=0,max=31"`
	Weekday      int                `json:"weekday" validate:"min=0,max=127"`
	EachWeeks    int                `json:"each_weeks" validate:"min=0"`
	EachMonths   int                `json:"each_months" validate:"min=0"`
	FreeEntry    bool               `json:"free_entry"`
	TicketLink   string             `json:"ticket_link" validate:"omitempty,url"`
	TimeBegin    string             `json:"time_begin" validate:"omitempty,datetime=15:04"`
	TimeEnd      string             `json:"time_end" validate:"omitempty,datetime=15:04"`
	Location     int                `json:"location" validate:"min=0"`
	Organizers   []int              `json:"organizers"`
	Categories   []int              `json:"categories"`
	Exceptions   []ExceptionRequest `json:"exceptions" validate:"dive"`
}

// ToEvent converts the request into an event.
func (r *Request) ToEvent(pmc *propertymapping.Configuration, loc *time.Location) (*models.Event, error) {
	begin, err := pmc.ConvertDate("eventBegin", r.EventBegin, loc)
	if err != nil {
		return nil, err
	}

	e := &models.Event{
		PID:        r.PID,
		EventType:  models.EventType(r.EventType),
		TopOfList:  r.TopOfList,
		Title:      r.Title,
		Teaser:     r.Teaser,
		Detail:     r.Detail,
		EventBegin: begin,
		Xth:        r.Xth,
		Weekday:    r.Weekday,
		EachWeeks:  r.EachWeeks,
		EachMonths: r.EachMonths,
		FreeEntry:  r.FreeEntry,
	}

	if r.EventEnd != "" {
		if e.EventEnd, err = pmc.ConvertDate("eventEnd", r.EventEnd, loc); err != nil {
			return nil, err
		}
		if e.EventEnd.Before(e.EventBegin) {
			return nil, errors.New("eventEnd: must not be before eventBegin")
		}
	}
	if r.RecurringEnd != "" {
		if e.RecurringEnd, err = pmc.ConvertDate("recurringEnd", r.RecurringEnd, loc); err != nil {
			return nil, err
		}
	}

	if r.TicketLink != "" {
		e.TicketLink = &models.Link{Link: r.TicketLink}
	}
	if r.TimeBegin != "" || r.TimeEnd != "" {
		e.EventTime = &models.Time{TimeBegin: r.TimeBegin, TimeEnd: r.TimeEnd}
	}
	if r.Location > 0 {
		e.Location = &models.Location{ID: r.Location}
	}

	for _, id := range r.Organizers {
		e.Organizers = append(e.Organizers, models.Organizer{ID: id})
	}
	for _, id := range r.Categories {
		e.Categories = append(e.Categories, models.Category{ID: id})
	}

	for _, x := range r.Exceptions {
		exception := models.Exception{
			ExceptionType:    models.ExceptionType(x.ExceptionType),
			ExceptionDate:    x.ExceptionDate.In(loc),
			ExceptionDetails: x.ExceptionDetails,
		}
		if x.TimeBegin != "" || x.TimeEnd != "" {
			exception.ExceptionTime = &models.Time{TimeBegin: x.TimeBegin, TimeEnd: x.TimeEnd}
		}
		e.Exceptions = append(e.Exceptions, exception)
	}

	return e, nil
}
