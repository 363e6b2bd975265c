package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"cutplan/internal/domain"
)

// GetProfile returns the stored profile, or nil when none has been saved.
func (d *DB) GetProfile(ctx context.Context) (*domain.AthleteProfile, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT weight_class, protocol, weigh_in_at, as_of FROM athlete_profile WHERE id=1;")

	var (
		p         domain.AthleteProfile
		protocol  string
		weighInAt string
		asOf      sql.NullString
	)
	if err := row.Scan(&p.WeightClass, &protocol, &weighInAt, &asOf); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.Protocol = domain.Protocol(protocol)

	t, err := decodeTime(weighInAt)
	if err != nil {
		return nil, err
	}
	p.WeighInAt = t

	if asOf.Valid {
		t, err := decodeTime(asOf.String)
		if err != nil {
			return nil, err
		}
		p.AsOf = &t
	}
	return &p, nil
}

// SaveProfile stores the profile, replacing any previous one. The table holds
// a single row.
func (d *DB) SaveProfile(ctx context.Context, p domain.AthleteProfile) error {
	var asOf any
	if p.AsOf != nil {
		asOf = encodeTime(*p.AsOf)
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO athlete_profile(id, weight_class, protocol, weigh_in_at, as_of)
		 VALUES(1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   weight_class=excluded.weight_class,
		   protocol=excluded.protocol,
		   weigh_in_at=excluded.weigh_in_at,
		   as_of=excluded.as_of;`,
		p.WeightClass, string(p.Protocol), encodeTime(p.WeighInAt), asOf,
	)
	return err
}
