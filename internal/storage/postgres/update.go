package postgres

import (
	"context"
	"events2/internal/models"
	"fmt"
)

// LegacyEvent is an event row written before event_type existed.
type LegacyEvent struct {
	ID             int
	RecurringEvent bool
	EventEnd       int64
}

func (s *Storage) CountEventsWithoutType(ctx context.Context) (int, error) {
	const op = "storage.postgres.CountEventsWithoutType"

	var count int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tx_events2_domain_model_event WHERE event_type = ''`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

// MigrateRecurringColumn derives event_type from the legacy recurring_event
// flag for every event without a type. It returns the number of migrated rows.
func (s *Storage) MigrateRecurringColumn(ctx context.Context) (int, error) {
	const op = "storage.postgres.MigrateRecurringColumn"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT uid, recurring_event, event_end
		FROM tx_events2_domain_model_event
		WHERE event_type = ''
		FOR UPDATE`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var legacy []LegacyEvent
	for rows.Next() {
		var (
			e         LegacyEvent
			recurring int
		)
		if err = rows.Scan(&e.ID, &recurring, &e.EventEnd); err != nil {
			rows.Close()
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		e.RecurringEvent = recurring != 0
		legacy = append(legacy, e)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	for _, e := range legacy {
		if e.RecurringEvent {
			_, err = tx.ExecContext(ctx, `
				UPDATE tx_events2_domain_model_event
				SET event_type = $1, recurring_end = $2, event_end = 0
				WHERE uid = $3`,
				string(models.EventTypeRecurring), e.EventEnd, e.ID,
			)
		} else {
			_, err = tx.ExecContext(ctx, `
				UPDATE tx_events2_domain_model_event
				SET event_type = $1
				WHERE uid = $2`,
				string(models.EventTypeSingle), e.ID,
			)
		}
		if err != nil {
			return 0, fmt.Errorf("%s: failed to update event %d: %w", op, e.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return len(legacy), nil
}

// CountFlexFormsContaining counts content elements whose FlexForm contains needle.
func (s *Storage) CountFlexFormsContaining(ctx context.Context, needle string) (int, error) {
	const op = "storage.postgres.CountFlexFormsContaining"

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tt_content WHERE pi_flexform LIKE $1`,
		"%"+escapeLike(needle)+"%",
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

// ReplaceInFlexForms applies all replacements to the FlexForms containing
// their old value inside one transaction. It returns the number of updated rows.
func (s *Storage) ReplaceInFlexForms(ctx context.Context, replacements []models.FlexFormReplacement) (int64, error) {
	const op = "storage.postgres.ReplaceInFlexForms"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var total int64
	for _, r := range replacements {
		res, err := tx.ExecContext(ctx, `
			UPDATE tt_content
			SET pi_flexform = REPLACE(pi_flexform, $1, $2)
			WHERE pi_flexform LIKE $3`,
			r.Old, r.New, "%"+escapeLike(r.Old)+"%",
		)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		total += affected
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return total, nil
}
