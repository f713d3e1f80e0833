package ics

import (
	"events2/internal/models"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

const productID = "-//events2//day export//EN"

// uidNamespace keeps UIDs of exported days stable across exports.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("events2:day"))

// UID identifies one day of an event.
func UID(day *models.Day) string {
	eventID := 0
	if day.Event != nil {
		eventID = day.Event.ID
	}

	name := fmt.Sprintf("%d:%d", eventID, day.DayTime.Unix())

	return uuid.NewSHA1(uidNamespace, []byte(name)).String()
}

// Filename is the attachment name of an exported day.
func Filename(day *models.Day) string {
	eventID := 0
	if day.Event != nil {
		eventID = day.Event.ID
	}

	return fmt.Sprintf("event-%d-%s.ics", eventID, day.Day.Format("20060102"))
}

// Export writes day as a single VEVENT calendar.
func Export(w io.Writer, day *models.Day, now time.Time) error {
	const op = "ics.Export"

	if day.Event == nil {
		return fmt.Errorf("%s: day %d has no event", op, day.ID)
	}
	event := day.Event

	start, end, err := bounds(day)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	vevent := cal.AddEvent(UID(day))
	vevent.SetDtStampTime(now)
	vevent.SetStartAt(start)
	vevent.SetEndAt(end)
	vevent.SetSummary(event.Title)

	if description := strings.TrimSpace(event.Teaser); description != "" {
		vevent.SetDescription(description)
	}
	if event.Location != nil {
		if address := event.Location.Address(); address != "" {
			vevent.SetLocation(address)
		}
	}
	if event.TicketLink != nil && event.TicketLink.Link != "" {
		vevent.SetURL(event.TicketLink.Link)
	}

	if _, err = io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// bounds returns begin and end of a day. Without an end time the event
// lasts until the end of the day.
func bounds(day *models.Day) (time.Time, time.Time, error) {
	start := day.DayTime
	y, m, d := start.Date()
	endOfDay := time.Date(y, m, d+1, 0, 0, 0, 0, start.Location())

	endOffset, err := timeOf(day).EndOffset()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if endOffset == 0 {
		return start, endOfDay, nil
	}

	end := time.Date(y, m, d, int(endOffset/time.Hour), int(endOffset%time.Hour/time.Minute), 0, 0, start.Location())
	if !end.After(start) {
		end = endOfDay
	}

	return start, end, nil
}

// timeOf returns the time of the day, preferring the time of an Add or
// Time exception on that date over the event time.
func timeOf(day *models.Day) *models.Time {
	t := day.Event.EventTime
	midnight := models.Midnight(day.DayTime)

	for _, x := range day.Event.Exceptions {
		if x.ExceptionTime == nil {
			continue
		}
		if x.ExceptionType != models.ExceptionTime && x.ExceptionType != models.ExceptionAdd {
			continue
		}
		if models.Midnight(x.ExceptionDate.In(midnight.Location())).Equal(midnight) {
			t = x.ExceptionTime
		}
	}

	return t
}
