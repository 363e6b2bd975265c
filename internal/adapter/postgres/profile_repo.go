package postgres

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
		p        domain.AthleteProfile
		protocol string
		asOf     sql.NullTime
	)
	if err := row.Scan(&p.WeightClass, &protocol, &p.WeighInAt, &asOf); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.Protocol = domain.Protocol(protocol)
	p.WeighInAt = p.WeighInAt.UTC()
	if asOf.Valid {
		t := asOf.Time.UTC()
		p.AsOf = &t
	}
	return &p, nil
}

// SaveProfile stores the profile, replacing any previous one. The table holds
// a single row.
func (d *DB) SaveProfile(ctx context.Context, p domain.AthleteProfile) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO athlete_profile(id, weight_class, protocol, weigh_in_at, as_of)
		 VALUES(1, $1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
		   weight_class=EXCLUDED.weight_class,
		   protocol=EXCLUDED.protocol,
		   weigh_in_at=EXCLUDED.weigh_in_at,
		   as_of=EXCLUDED.as_of;`,
		p.WeightClass, string(p.Protocol), p.WeighInAt.UTC(), p.AsOf,
	)
	return err
}
