package postgres

import (
	"context"
	"database/sql"
	"errors"
	"events2/internal/models"
	"events2/internal/storage"
	"fmt"
)

const eventColumns = `
		e.uid, e.pid, e.hidden, e.event_type, e.top_of_list, e.title, e.teaser, e.detail,
		e.event_begin, e.event_end, e.recurring_end, e.xth, e.weekday, e.each_weeks, e.each_months,
		e.free_entry, e.ticket_link_title, e.ticket_link,
		COALESCE(l.uid, 0), COALESCE(l.pid, 0), COALESCE(l.location, ''), COALESCE(l.street, ''),
		COALESCE(l.house_number, ''), COALESCE(l.zip, ''), COALESCE(l.city, ''), COALESCE(l.country, '')`

type scanner interface {
	Scan(dest ...any) error
}

func (s *Storage) scanEvent(row scanner) (*models.Event, error) {
	var (
		e                                  models.Event
		eventType, linkTitle, link         string
		hidden, topOfList, freeEntry       int
		eventBegin, eventEnd, recurringEnd int64
		loc                                models.Location
	)

	err := row.Scan(
		&e.ID, &e.PID, &hidden, &eventType, &topOfList, &e.Title, &e.Teaser, &e.Detail,
		&eventBegin, &eventEnd, &recurringEnd, &e.Xth, &e.Weekday, &e.EachWeeks, &e.EachMonths,
		&freeEntry, &linkTitle, &link,
		&loc.ID, &loc.PID, &loc.Location, &loc.Street,
		&loc.HouseNumber, &loc.Zip, &loc.City, &loc.Country,
	)
	if err != nil {
		return nil, err
	}

	e.Hidden = hidden != 0
	e.EventType = models.EventType(eventType)
	e.TopOfList = topOfList != 0
	e.FreeEntry = freeEntry != 0
	e.EventBegin = s.fromUnix(eventBegin)
	e.EventEnd = s.fromUnix(eventEnd)
	e.RecurringEnd = s.fromUnix(recurringEnd)

	if link != "" {
		e.TicketLink = &models.Link{Title: linkTitle, Link: link}
	}
	if loc.ID != 0 {
		e.Location = &loc
	}

	return &e, nil
}

// GetEvent loads a visible event with its location, organizers, categories,
// time and exceptions.
func (s *Storage) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	const op = "storage.postgres.GetEvent"

	q := `
		SELECT ` + eventColumns + `
		FROM tx_events2_domain_model_event e
		LEFT JOIN tx_events2_domain_model_location l
			ON l.uid = e.location AND l.hidden = 0 AND l.deleted = 0
		WHERE e.uid = $1 AND e.hidden = 0 AND e.deleted = 0`

	event, err := s.scanEvent(s.DB.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if event.Organizers, err = s.getOrganizers(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if event.Categories, err = s.getCategories(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if event.EventTime, err = s.getEventTime(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if event.Exceptions, err = s.getExceptions(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

func (s *Storage) getOrganizers(ctx context.Context, eventID int) ([]models.Organizer, error) {
	q := `
		SELECT o.uid, o.pid, o.organizer, o.link_title, o.link
		FROM tx_events2_domain_model_organizer o
		INNER JOIN tx_events2_event_organizer_mm mm ON mm.uid_foreign = o.uid
		WHERE mm.uid_local = $1 AND o.hidden = 0 AND o.deleted = 0
		ORDER BY mm.sorting ASC`

	rows, err := s.DB.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organizers: %w", err)
	}
	defer rows.Close()

	var organizers []models.Organizer
	for rows.Next() {
		var (
			o               models.Organizer
			linkTitle, link string
		)
		if err = rows.Scan(&o.ID, &o.PID, &o.Organizer, &linkTitle, &link); err != nil {
			return nil, fmt.Errorf("failed to scan organizer: %w", err)
		}
		if link != "" {
			o.Link = &models.Link{Title: linkTitle, Link: link}
		}
		organizers = append(organizers, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organizers: %w", err)
	}

	return organizers, nil
}

func (s *Storage) getCategories(ctx context.Context, eventID int) ([]models.Category, error) {
	q := `
		SELECT c.uid, c.title
		FROM sys_category c
		INNER JOIN sys_category_record_mm mm ON mm.uid_local = c.uid
		WHERE mm.uid_foreign = $1
		  AND mm.tablenames = $2
		  AND mm.fieldname = 'categories'
		  AND c.hidden = 0 AND c.deleted = 0
		ORDER BY mm.sorting ASC`

	rows, err := s.DB.QueryContext(ctx, q, eventID, tableEvent)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err = rows.Scan(&c.ID, &c.Title); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func (s *Storage) getEventTime(ctx context.Context, eventID int) (*models.Time, error) {
	q := `
		SELECT uid, time_entry, time_begin, time_end, duration
		FROM tx_events2_domain_model_time
		WHERE event = $1 AND exception = 0
		ORDER BY uid ASC
		LIMIT 1`

	var t models.Time
	err := s.DB.QueryRowContext(ctx, q, eventID).Scan(&t.ID, &t.TimeEntry, &t.TimeBegin, &t.TimeEnd, &t.Duration)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event time: %w", err)
	}

	return &t, nil
}

func (s *Storage) getExceptions(ctx context.Context, eventID int) ([]models.Exception, error) {
	q := `
		SELECT x.uid, x.exception_type, x.exception_date, x.exception_details,
		       COALESCE(t.uid, 0), COALESCE(t.time_begin, ''), COALESCE(t.time_end, '')
		FROM tx_events2_domain_model_exception x
		LEFT JOIN tx_events2_domain_model_time t ON t.exception = x.uid
		WHERE x.event = $1 AND x.hidden = 0 AND x.deleted = 0
		ORDER BY x.exception_date ASC`

	rows, err := s.DB.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exceptions: %w", err)
	}
	defer rows.Close()

	var exceptions []models.Exception
	for rows.Next() {
		var (
			x                  models.Exception
			exceptionType      string
			date               int64
			timeID             int
			timeBegin, timeEnd string
		)
		if err = rows.Scan(&x.ID, &exceptionType, &date, &x.ExceptionDetails, &timeID, &timeBegin, &timeEnd); err != nil {
			return nil, fmt.Errorf("failed to scan exception: %w", err)
		}
		x.ExceptionType = models.ExceptionType(exceptionType)
		x.ExceptionDate = s.fromUnix(date)
		if timeID != 0 {
			x.ExceptionTime = &models.Time{ID: timeID, TimeBegin: timeBegin, TimeEnd: timeEnd}
		}
		exceptions = append(exceptions, x)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exceptions: %w", err)
	}

	return exceptions, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

func eventArgs(e *models.Event) []any {
	var linkTitle, link string
	if e.TicketLink != nil {
		linkTitle, link = e.TicketLink.Title, e.TicketLink.Link
	}

	var location int
	if e.Location != nil {
		location = e.Location.ID
	}

	return []any{
		e.PID,
		string(e.EventType),
		boolToInt(e.TopOfList),
		e.Title,
		e.Teaser,
		e.Detail,
		toUnix(e.EventBegin),
		toUnix(e.EventEnd),
		toUnix(e.RecurringEnd),
		e.Xth,
		e.Weekday,
		e.EachWeeks,
		e.EachMonths,
		boolToInt(e.FreeEntry),
		linkTitle,
		link,
		location,
	}
}

// CreateEvent stores an event with its relations and returns its uid.
func (s *Storage) CreateEvent(ctx context.Context, e *models.Event) (int, error) {
	const op = "storage.postgres.CreateEvent"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO tx_events2_domain_model_event (
			pid, event_type, top_of_list, title, teaser, detail,
			event_begin, event_end, recurring_end, xth, weekday, each_weeks, each_months,
			free_entry, ticket_link_title, ticket_link, location
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING uid`

	var id int
	if err = tx.QueryRowContext(ctx, insertQuery, eventArgs(e)...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: failed to create event: %w", op, err)
	}

	if err = writeRelations(ctx, tx, id, e); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// UpdateEvent overwrites an event and replaces its relations.
func (s *Storage) UpdateEvent(ctx context.Context, e *models.Event) error {
	const op = "storage.postgres.UpdateEvent"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE tx_events2_domain_model_event
		SET pid = $1, event_type = $2, top_of_list = $3, title = $4, teaser = $5, detail = $6,
		    event_begin = $7, event_end = $8, recurring_end = $9, xth = $10, weekday = $11,
		    each_weeks = $12, each_months = $13, free_entry = $14, ticket_link_title = $15,
		    ticket_link = $16, location = $17
		WHERE uid = $18 AND deleted = 0`

	res, err := tx.ExecContext(ctx, updateQuery, append(eventArgs(e), e.ID)...)
	if err != nil {
		return fmt.Errorf("%s: failed to update event: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrEventNotFound
	}

	for _, q := range []string{
		`DELETE FROM tx_events2_event_organizer_mm WHERE uid_local = $1`,
		`DELETE FROM sys_category_record_mm WHERE uid_foreign = $1 AND tablenames = 'tx_events2_domain_model_event' AND fieldname = 'categories'`,
		`DELETE FROM tx_events2_domain_model_time WHERE event = $1`,
		`DELETE FROM tx_events2_domain_model_exception WHERE event = $1`,
	} {
		if _, err = tx.ExecContext(ctx, q, e.ID); err != nil {
			return fmt.Errorf("%s: failed to clear relations: %w", op, err)
		}
	}

	if err = writeRelations(ctx, tx, e.ID, e); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return tx.Commit()
}

func writeRelations(ctx context.Context, tx *sql.Tx, eventID int, e *models.Event) error {
	for i, organizerID := range e.OrganizerIDs() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tx_events2_event_organizer_mm (uid_local, uid_foreign, sorting) VALUES ($1, $2, $3)`,
			eventID, organizerID, i+1,
		)
		if err != nil {
			return fmt.Errorf("failed to add organizer: %w", err)
		}
	}

	for i, categoryID := range e.CategoryIDs() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sys_category_record_mm (uid_local, uid_foreign, tablenames, fieldname, sorting)
			 VALUES ($1, $2, $3, 'categories', $4)`,
			categoryID, eventID, tableEvent, i+1,
		)
		if err != nil {
			return fmt.Errorf("failed to add category: %w", err)
		}
	}

	if t := e.EventTime; t != nil {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tx_events2_domain_model_time (event, time_entry, time_begin, time_end, duration)
			 VALUES ($1, $2, $3, $4, $5)`,
			eventID, t.TimeEntry, t.TimeBegin, t.TimeEnd, t.Duration,
		)
		if err != nil {
			return fmt.Errorf("failed to add event time: %w", err)
		}
	}

	for _, x := range e.Exceptions {
		var exceptionID int
		err := tx.QueryRowContext(ctx,
			`INSERT INTO tx_events2_domain_model_exception (event, exception_type, exception_date, exception_details)
			 VALUES ($1, $2, $3, $4)
			 RETURNING uid`,
			eventID, string(x.ExceptionType), toUnix(x.ExceptionDate), x.ExceptionDetails,
		).Scan(&exceptionID)
		if err != nil {
			return fmt.Errorf("failed to add exception: %w", err)
		}

		if x.ExceptionTime == nil {
			continue
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO tx_events2_domain_model_time (exception, time_begin, time_end) VALUES ($1, $2, $3)`,
			exceptionID, x.ExceptionTime.TimeBegin, x.ExceptionTime.TimeEnd,
		)
		if err != nil {
			return fmt.Errorf("failed to add exception time: %w", err)
		}
	}

	return nil
}

// ReplaceDays deletes all days of an event and inserts the given ones.
func (s *Storage) ReplaceDays(ctx context.Context, eventID int, days []models.Day) error {
	const op = "storage.postgres.ReplaceDays"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tx_events2_domain_model_day WHERE event = $1`, eventID); err != nil {
		return fmt.Errorf("%s: failed to delete days: %w", op, err)
	}

	if len(days) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO tx_events2_domain_model_day (pid, day, day_time, sort_day_time, same_day_time, event)
			VALUES ($1, $2, $3, $4, $5, $6)`)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		defer stmt.Close()

		for _, d := range days {
			_, err = stmt.ExecContext(ctx,
				d.PID,
				toUnix(d.Day),
				toUnix(d.DayTime),
				toUnix(d.SortDayTime),
				toUnix(d.SameDayTime),
				eventID,
			)
			if err != nil {
				return fmt.Errorf("%s: failed to insert day: %w", op, err)
			}
		}
	}

	return tx.Commit()
}
