package postgres

import (
	"context"
	"database/sql"
	"errors"
	"events2/internal/models"
	"events2/internal/storage"
	"fmt"
)

func (s *Storage) GetLocation(ctx context.Context, id int) (*models.Location, error) {
	const op = "storage.postgres.GetLocation"

	q := `
		SELECT uid, pid, location, street, house_number, zip, city, country
		FROM tx_events2_domain_model_location
		WHERE uid = $1 AND hidden = 0 AND deleted = 0`

	var l models.Location
	err := s.DB.QueryRowContext(ctx, q, id).Scan(
		&l.ID,
		&l.PID,
		&l.Location,
		&l.Street,
		&l.HouseNumber,
		&l.Zip,
		&l.City,
		&l.Country,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrLocationNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &l, nil
}
