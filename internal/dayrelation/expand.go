package dayrelation

import (
	"errors"
	"events2/internal/models"
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"
)

const defaultMaxDaysPerEvent = 1000

var ErrUnknownEventType = errors.New("unknown event type")

// ExpandConfig controls how an event is expanded into days.
type ExpandConfig struct {
	// Now anchors the window of recurring events.
	Now time.Time

	// Location is the zone days are computed in. If nil, time.Local is used.
	Location *time.Location

	// RecurringPast and RecurringFuture are the number of months before and
	// after Now for which recurring events get days.
	RecurringPast   int
	RecurringFuture int

	// MaxDaysPerEvent caps the days of a single event. If zero,
	// defaultMaxDaysPerEvent is used.
	MaxDaysPerEvent int
}

type ExpandResult struct {
	Days      []models.Day
	Truncated bool
}

var weekdays = []struct {
	bit int
	day rrule.Weekday
}{
	{models.WeekdayMonday, rrule.MO},
	{models.WeekdayTuesday, rrule.TU},
	{models.WeekdayWednesday, rrule.WE},
	{models.WeekdayThursday, rrule.TH},
	{models.WeekdayFriday, rrule.FR},
	{models.WeekdaySaturday, rrule.SA},
	{models.WeekdaySunday, rrule.SU},
}

var xths = []struct {
	bit int
	nth int
}{
	{models.XthFirst, 1},
	{models.XthSecond, 2},
	{models.XthThird, 3},
	{models.XthFourth, 4},
	{models.XthFifth, 5},
}

// Expand computes the days of an event:
//
//   - single: the day of event_begin
//   - duration: every day from event_begin to event_end
//   - recurring: the days produced by each_weeks, each_months or xth/weekday
//     inside the window around Now, ending at recurring_end if set
//
// Exceptions of type Add and Remove add and remove days, Time exceptions
// replace the time of their day. Added days are kept for every event type
// as long as they lie within the recurring months around Now.
func Expand(event *models.Event, cfg ExpandConfig) (ExpandResult, error) {
	var result ExpandResult

	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.MaxDaysPerEvent <= 0 {
		cfg.MaxDaysPerEvent = defaultMaxDaysPerEvent
	}
	if event.EventBegin.IsZero() {
		return result, errors.New("expand: event has no begin")
	}

	begin := models.Midnight(event.EventBegin.In(cfg.Location))

	set := &rrule.Set{}
	var windowStart, windowEnd time.Time

	switch event.EventType {
	case models.EventTypeSingle:
		set.RDate(begin)
		windowStart, windowEnd = begin, begin

	case models.EventTypeDuration:
		end := begin
		if !event.EventEnd.IsZero() {
			end = models.Midnight(event.EventEnd.In(cfg.Location))
		}
		if end.Before(begin) {
			end = begin
		}

		r, err := rrule.NewRRule(rrule.ROption{
			Freq:    rrule.DAILY,
			Dtstart: begin,
			Until:   end,
		})
		if err != nil {
			return result, fmt.Errorf("expand: %w", err)
		}
		set.RRule(r)
		windowStart, windowEnd = begin, end

	case models.EventTypeRecurring:
		r, err := recurringRule(event, begin)
		if err != nil {
			return result, fmt.Errorf("expand: %w", err)
		}
		set.RRule(r)
		windowStart, windowEnd = recurringWindow(event, begin, cfg)

	default:
		return result, fmt.Errorf("expand: %w: %q", ErrUnknownEventType, event.EventType)
	}

	var dates []time.Time
	if !windowEnd.Before(windowStart) {
		dates = set.Between(windowStart, windowEnd, true)
	}

	addStart, addEnd := exceptionWindow(cfg)
	times := make(map[int64]*models.Time)
	removed := make(map[int64]bool)
	for _, x := range event.Exceptions {
		date := models.Midnight(x.ExceptionDate.In(cfg.Location))

		switch x.ExceptionType {
		case models.ExceptionAdd:
			if date.Before(addStart) || date.After(addEnd) {
				continue
			}
			dates = append(dates, date)
			if x.ExceptionTime != nil {
				times[date.Unix()] = x.ExceptionTime
			}
		case models.ExceptionRemove:
			removed[date.Unix()] = true
		case models.ExceptionTime:
			times[date.Unix()] = x.ExceptionTime
		}
	}

	dates = uniqueSorted(dates)
	kept := dates[:0]
	for _, date := range dates {
		if !removed[date.Unix()] {
			kept = append(kept, date)
		}
	}
	dates = kept

	if len(dates) > cfg.MaxDaysPerEvent {
		dates = dates[:cfg.MaxDaysPerEvent]
		result.Truncated = true
	}

	days := make([]models.Day, 0, len(dates))
	for _, date := range dates {
		t := event.EventTime
		if override, ok := times[date.Unix()]; ok && override != nil {
			t = override
		}

		dayTime, err := atTime(date, t)
		if err != nil {
			return result, fmt.Errorf("expand: %w", err)
		}

		days = append(days, models.Day{
			PID:         event.PID,
			Day:         date,
			DayTime:     dayTime,
			SortDayTime: dayTime,
			SameDayTime: dayTime,
		})
	}

	// all days of a duration event sort with its first day
	if event.EventType == models.EventTypeDuration && len(days) > 0 {
		first := days[0].DayTime
		for i := range days {
			days[i].SortDayTime = first
		}
	}

	result.Days = days

	return result, nil
}

func recurringRule(event *models.Event, begin time.Time) (*rrule.RRule, error) {
	opt := rrule.ROption{
		Dtstart: begin,
	}

	switch {
	case event.EachWeeks > 0:
		opt.Freq = rrule.WEEKLY
		opt.Interval = event.EachWeeks
	case event.EachMonths > 0:
		opt.Freq = rrule.MONTHLY
		opt.Interval = event.EachMonths
	case event.Weekday > 0 && event.Xth > 0:
		opt.Freq = rrule.MONTHLY
		for _, wd := range weekdays {
			if event.Weekday&wd.bit == 0 {
				continue
			}
			for _, x := range xths {
				if event.Xth&x.bit != 0 {
					opt.Byweekday = append(opt.Byweekday, wd.day.Nth(x.nth))
				}
			}
		}
	case event.Weekday > 0:
		opt.Freq = rrule.WEEKLY
		for _, wd := range weekdays {
			if event.Weekday&wd.bit != 0 {
				opt.Byweekday = append(opt.Byweekday, wd.day)
			}
		}
	default:
		opt.Freq = rrule.WEEKLY
	}

	return rrule.NewRRule(opt)
}

func recurringWindow(event *models.Event, begin time.Time, cfg ExpandConfig) (time.Time, time.Time) {
	start, end := exceptionWindow(cfg)
	if begin.After(start) {
		start = begin
	}

	if !event.RecurringEnd.IsZero() {
		recurringEnd := models.Midnight(event.RecurringEnd.In(cfg.Location))
		if recurringEnd.Before(end) {
			end = recurringEnd
		}
	}

	return start, end
}

// exceptionWindow bounds added days to the same months around Now as
// recurring events.
func exceptionWindow(cfg ExpandConfig) (time.Time, time.Time) {
	today := models.Midnight(cfg.Now.In(cfg.Location))

	return today.AddDate(0, -cfg.RecurringPast, 0), today.AddDate(0, cfg.RecurringFuture, 0)
}

func atTime(date time.Time, t *models.Time) (time.Time, error) {
	offset, err := t.BeginOffset()
	if err != nil {
		return time.Time{}, err
	}

	y, m, d := date.Date()
	h := int(offset / time.Hour)
	minute := int((offset % time.Hour) / time.Minute)

	return time.Date(y, m, d, h, minute, 0, 0, date.Location()), nil
}

func uniqueSorted(dates []time.Time) []time.Time {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := dates[:0]
	for i, d := range dates {
		if i > 0 && d.Equal(out[len(out)-1]) {
			continue
		}
		out = append(out, d)
	}

	return out
}
