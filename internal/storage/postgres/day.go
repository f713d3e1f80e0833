package postgres

import (
	"context"
	"database/sql"
	"errors"
	"events2/internal/models"
	"events2/internal/storage"
	"events2/internal/storage/query"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

var dayFields = []string{
	"day.uid AS uid",
	"day.pid AS pid",
	"day.day AS day",
	"day.day_time AS day_time",
	"day.sort_day_time AS sort_day_time",
	"day.same_day_time AS same_day_time",
}

// mergedDayFields collapse all days of an event into its next one. uid and
// pid are taken from the same row as the earliest day_time.
var mergedDayFields = []string{
	"(ARRAY_AGG(day.uid ORDER BY day.day_time, day.uid))[1] AS uid",
	"(ARRAY_AGG(day.pid ORDER BY day.day_time, day.uid))[1] AS pid",
	"MIN(day.day) AS day",
	"MIN(day.day_time) AS day_time",
	"MIN(day.sort_day_time) AS sort_day_time",
	"MIN(day.same_day_time) AS same_day_time",
}

var dayEventFields = []string{
	"event.uid",
	"event.pid",
	"event.event_type",
	"event.top_of_list",
	"event.title",
	"event.teaser",
	"event.event_begin",
	"event.event_end",
	"event.free_entry",
	"event.location",
}

func newDayStatement(merge bool) *query.Statement {
	fields := dayFields
	if merge {
		fields = mergedDayFields
	}

	stmt := &query.Statement{
		Fields: append(append([]string{}, fields...), dayEventFields...),
		Tables: []string{tableDay + " day"},
		Joins: []query.Clause{
			query.C("INNER JOIN " + tableEvent + " event ON day.event = event.uid"),
		},
		AdditionalWhere: []query.Clause{
			query.C("day.hidden = 0"),
			query.C("event.hidden = 0"),
			query.C("event.deleted = 0"),
		},
		OrderBy: []string{"event.top_of_list DESC", "sort_day_time ASC", "day_time ASC"},
	}

	if merge {
		// event.uid is the primary key, so all event columns may be selected
		stmt.GroupBy = []string{"event.uid"}
	}

	return stmt
}

func categoryConstraint(categories []int) query.Clause {
	return query.C(
		"EXISTS (SELECT 1 FROM "+tableCategoryMM+" cm WHERE cm.uid_foreign = event.uid"+
			" AND cm.tablenames = ? AND cm.fieldname = 'categories' AND cm.uid_local = ANY(?))",
		tableEvent,
		pq.Array(categories),
	)
}

func (s *Storage) scanDays(rows *sql.Rows) ([]models.Day, error) {
	days := make([]models.Day, 0)

	for rows.Next() {
		var (
			d                                models.Day
			e                                models.Event
			day, dayTime, sortDay, sameDay   int64
			eventBegin, eventEnd             int64
			eventType                        string
			topOfList, freeEntry, locationID int
		)

		err := rows.Scan(
			&d.ID, &d.PID, &day, &dayTime, &sortDay, &sameDay,
			&e.ID, &e.PID, &eventType, &topOfList, &e.Title, &e.Teaser,
			&eventBegin, &eventEnd, &freeEntry, &locationID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}

		d.Day = s.fromUnix(day)
		d.DayTime = s.fromUnix(dayTime)
		d.SortDayTime = s.fromUnix(sortDay)
		d.SameDayTime = s.fromUnix(sameDay)

		e.EventType = models.EventType(eventType)
		e.TopOfList = topOfList != 0
		e.FreeEntry = freeEntry != 0
		e.EventBegin = s.fromUnix(eventBegin)
		e.EventEnd = s.fromUnix(eventEnd)
		if locationID != 0 {
			e.Location = &models.Location{ID: locationID}
		}
		d.Event = &e

		days = append(days, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating days: %w", err)
	}

	return days, nil
}

// ListDays returns the days matching filter. Missing range bounds are
// derived from the list type.
func (s *Storage) ListDays(ctx context.Context, filter models.DayFilter) ([]models.Day, error) {
	const op = "storage.postgres.ListDays"

	from, to := filter.From, filter.To
	if from.IsZero() {
		from, to = models.DateRange(filter.ListType, time.Now().In(s.loc))
	}

	merge := filter.MergeEvents || filter.ListType == models.ListTypeLatest

	stmt := newDayStatement(merge)
	stmt.Where = append(stmt.Where, query.C("day.day >= ?", from.Unix()))
	if !to.IsZero() {
		stmt.Where = append(stmt.Where, query.C("day.day < ?", to.Unix()))
	}

	if filter.Organizer > 0 {
		stmt.Where = append(stmt.Where, query.C(
			"EXISTS (SELECT 1 FROM tx_events2_event_organizer_mm om WHERE om.uid_local = event.uid AND om.uid_foreign = ?)",
			filter.Organizer,
		))
	}
	if len(filter.Categories) > 0 {
		stmt.Where = append(stmt.Where, categoryConstraint(filter.Categories))
	}
	if len(filter.StoragePIDs) > 0 {
		stmt.Where = append(stmt.Where, query.C("event.pid = ANY(?)", pq.Array(filter.StoragePIDs)))
	}

	stmt.Limit = filter.Limit

	rows, err := s.backend.PreparedRows(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	days, err := s.scanDays(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return days, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// SearchDays returns the next day of every event matching search.
func (s *Storage) SearchDays(ctx context.Context, search models.Search) ([]models.Day, error) {
	const op = "storage.postgres.SearchDays"

	stmt := newDayStatement(true)

	from := search.EventBegin
	if from.IsZero() {
		from = models.Midnight(time.Now().In(s.loc))
	}
	stmt.Where = append(stmt.Where, query.C("day.day >= ?", models.Midnight(from).Unix()))

	if !search.EventEnd.IsZero() {
		stmt.Where = append(stmt.Where, query.C("day.day < ?", models.Midnight(search.EventEnd).AddDate(0, 0, 1).Unix()))
	}

	if term := strings.TrimSpace(search.Search); term != "" {
		pattern := "%" + escapeLike(term) + "%"
		stmt.Where = append(stmt.Where, query.C("(event.title ILIKE ? OR event.teaser ILIKE ?)", pattern, pattern))
	}

	category := search.SubCategory
	if category == 0 {
		category = search.MainCategory
	}
	if category > 0 {
		stmt.Where = append(stmt.Where, categoryConstraint([]int{category}))
	}

	if search.Location > 0 {
		stmt.Where = append(stmt.Where, query.C("event.location = ?", search.Location))
	}

	if search.FreeEntry {
		stmt.Where = append(stmt.Where, query.C("event.free_entry = 1"))
	}

	rows, err := s.backend.Rows(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	days, err := s.scanDays(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return days, nil
}

// GetDay returns the day of an event at timestamp, matched against the day
// time first and the day itself second, with the full event attached.
func (s *Storage) GetDay(ctx context.Context, eventID int, timestamp time.Time) (*models.Day, error) {
	const op = "storage.postgres.GetDay"

	q := `
		SELECT uid, pid, day, day_time, sort_day_time, same_day_time
		FROM tx_events2_domain_model_day
		WHERE event = $1 AND hidden = 0 AND (day_time = $2 OR day = $2)
		ORDER BY CASE WHEN day_time = $2 THEN 0 ELSE 1 END, day_time ASC
		LIMIT 1`

	var (
		d                              models.Day
		day, dayTime, sortDay, sameDay int64
	)

	err := s.DB.QueryRowContext(ctx, q, eventID, timestamp.Unix()).Scan(
		&d.ID, &d.PID, &day, &dayTime, &sortDay, &sameDay,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDayNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d.Day = s.fromUnix(day)
	d.DayTime = s.fromUnix(dayTime)
	d.SortDayTime = s.fromUnix(sortDay)
	d.SameDayTime = s.fromUnix(sameDay)

	d.Event, err = s.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			return nil, storage.ErrDayNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &d, nil
}
