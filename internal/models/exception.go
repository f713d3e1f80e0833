package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type ExceptionType string

const (
	ExceptionAdd    ExceptionType = "Add"
	ExceptionRemove ExceptionType = "Remove"
	ExceptionTime   ExceptionType = "Time"
	ExceptionInfo   ExceptionType = "Info"
)

type Exception struct {
	ID               int           `json:"id"`
	ExceptionType    ExceptionType `json:"exception_type"`
	ExceptionDate    time.Time     `json:"exception_date"`
	ExceptionTime    *Time         `json:"exception_time,omitempty"`
	ExceptionDetails string        `json:"exception_details,omitempty"`
}

// Time is a begin/end pair in "HH:MM" notation.
type Time struct {
	ID        int    `json:"id"`
	TimeEntry string `json:"time_entry,omitempty"`
	TimeBegin string `json:"time_begin"`
	TimeEnd   string `json:"time_end,omitempty"`
	Duration  string `json:"duration,omitempty"`
}

// BeginOffset converts TimeBegin into an offset from midnight.
// An empty TimeBegin means midnight.
func (t *Time) BeginOffset() (time.Duration, error) {
	if t == nil {
		return 0, nil
	}

	return parseClock(t.TimeBegin)
}

func (t *Time) EndOffset() (time.Duration, error) {
	if t == nil {
		return 0, nil
	}

	return parseClock(t.TimeEnd)
}

func parseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}

	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}
