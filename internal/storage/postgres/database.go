package postgres

import (
	"context"
	"events2/internal/models"
	"events2/internal/storage"
	"events2/internal/storage/query"
	"fmt"
	"time"

	"github.com/lib/pq"
)

const (
	tableEvent      = "tx_events2_domain_model_event"
	tableDay        = "tx_events2_domain_model_day"
	tableCategoryMM = "sys_category_record_mm"
)

// GetColumnsFromTable returns the columns of tableName keyed by column name.
func (s *Storage) GetColumnsFromTable(ctx context.Context, tableName string) (map[string]models.Column, error) {
	const op = "storage.postgres.GetColumnsFromTable"

	q := `
		SELECT c.column_name,
		       c.data_type,
		       c.is_nullable,
		       c.column_default,
		       CASE WHEN EXISTS (
		           SELECT 1
		           FROM information_schema.key_column_usage k
		           WHERE k.table_schema = c.table_schema
		             AND k.table_name = c.table_name
		             AND k.column_name = c.column_name
		       ) THEN 'PRI' ELSE '' END,
		       col_description(format('%I.%I', c.table_schema, c.table_name)::regclass, c.ordinal_position)
		FROM information_schema.columns c
		WHERE c.table_schema = current_schema()
		  AND c.table_name = $1
		ORDER BY c.ordinal_position`

	rows, err := s.DB.QueryContext(ctx, q, tableName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	columns := make(map[string]models.Column)
	for rows.Next() {
		var c models.Column
		if err = rows.Scan(&c.Field, &c.Type, &c.Null, &c.Default, &c.Key, &c.Comment); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		columns[c.Field] = c
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("%s: %s: %w", op, tableName, storage.ErrTableNotFound)
	}

	return columns, nil
}

// currentAndFutureConstraint matches events which still produce days after now.
func currentAndFutureConstraint(now int64) query.Clause {
	return query.Or(
		query.And(
			query.C("event_type = ?", string(models.EventTypeSingle)),
			query.C("event_begin > ?", now),
		),
		query.And(
			query.C("event_type = ?", string(models.EventTypeDuration)),
			query.Or(query.C("event_end = 0"), query.C("event_end > ?", now)),
		),
		query.And(
			query.C("event_type = ?", string(models.EventTypeRecurring)),
			query.Or(query.C("recurring_end = 0"), query.C("recurring_end > ?", now)),
		),
	)
}

// GetCurrentAndFutureEvents returns uid and pid of all visible events that
// are running or start in the future.
func (s *Storage) GetCurrentAndFutureEvents(ctx context.Context) ([]models.EventRecord, error) {
	const op = "storage.postgres.GetCurrentAndFutureEvents"

	stmt := &query.Statement{
		Fields: []string{"uid", "pid"},
		Tables: []string{tableEvent},
		Where: []query.Clause{
			currentAndFutureConstraint(time.Now().Unix()),
		},
		AdditionalWhere: []query.Clause{
			query.C("hidden = 0"),
			query.C("deleted = 0"),
		},
		OrderBy: []string{"uid ASC"},
	}

	rows, err := s.backend.Rows(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	events := make([]models.EventRecord, 0)
	for rows.Next() {
		var e models.EventRecord
		if err = rows.Scan(&e.ID, &e.PID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

// GetDaysInRange returns event uid, title and day of all days in [start, end).
func (s *Storage) GetDaysInRange(ctx context.Context, start, end time.Time, storagePids, categories []int) ([]models.DayInRange, error) {
	const op = "storage.postgres.GetDaysInRange"

	stmt := &query.Statement{
		Fields: []string{"event.uid", "event.title", "day.day"},
		Tables: []string{tableDay + " day"},
		Joins: []query.Clause{
			query.C("LEFT JOIN " + tableEvent + " event ON day.event = event.uid"),
		},
		OrderBy: []string{"day.day ASC", "event.uid ASC"},
	}

	if len(categories) > 0 {
		stmt.Joins = append(stmt.Joins, query.C(
			"LEFT JOIN "+tableCategoryMM+" category_mm ON event.uid = category_mm.uid_foreign"+
				" AND category_mm.tablenames = ? AND category_mm.fieldname = ?",
			tableEvent,
			"categories",
		))
		stmt.Where = append(stmt.Where, query.C("category_mm.uid_local = ANY(?)", pq.Array(categories)))
	}

	if len(storagePids) > 0 {
		stmt.Where = append(stmt.Where, query.C("event.pid = ANY(?)", pq.Array(storagePids)))
	}

	stmt.Where = append(stmt.Where,
		query.C("day.day >= ?", start.Unix()),
		query.C("day.day < ?", end.Unix()),
	)
	stmt.AdditionalWhere = []query.Clause{
		query.C("day.hidden = 0"),
		query.C("event.hidden = 0"),
		query.C("event.deleted = 0"),
	}

	rows, err := s.backend.Rows(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	days := make([]models.DayInRange, 0)
	for rows.Next() {
		var (
			d   models.DayInRange
			day int64
		)
		if err = rows.Scan(&d.EventID, &d.Title, &day); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		d.Day = s.fromUnix(day)
		days = append(days, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return days, nil
}
