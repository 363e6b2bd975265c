package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutplan/internal/app"
	"cutplan/internal/domain"
)

func TestProfileGet_NotSet(t *testing.T) {
	svc := app.NewProfileService(&mockProfileRepo{}, zerolog.Nop())
	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, app.ErrProfileNotSet)
}

func TestProfileGet_ReturnsSaved(t *testing.T) {
	svc := app.NewProfileService(profileRepoWith(testProfile), zerolog.Nop())
	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testProfile, *got)
}

func TestProfileUpdate_Validation(t *testing.T) {
	svc := app.NewProfileService(&mockProfileRepo{}, zerolog.Nop())

	tests := []struct {
		name string
		in   app.UpdateProfileInput
	}{
		{"zero class", app.UpdateProfileInput{WeightClass: 0, Protocol: "make-weight", WeighInAt: testWeighIn}},
		{"negative class", app.UpdateProfileInput{WeightClass: -141, Protocol: "make-weight", WeighInAt: testWeighIn}},
		{"unknown protocol", app.UpdateProfileInput{WeightClass: 141, Protocol: "crash-diet", WeighInAt: testWeighIn}},
		{"missing weigh-in", app.UpdateProfileInput{WeightClass: 141, Protocol: "make-weight"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), tc.in)
			assert.Error(t, err)
		})
	}
}

func TestProfileUpdate_Success(t *testing.T) {
	var saved domain.AthleteProfile
	repo := &mockProfileRepo{
		saveFn: func(_ context.Context, p domain.AthleteProfile) error {
			saved = p
			return nil
		},
	}
	svc := app.NewProfileService(repo, zerolog.Nop())

	asOf := testMonday.Add(6 * time.Hour)
	got, err := svc.Update(context.Background(), app.UpdateProfileInput{
		WeightClass: 141,
		Protocol:    "make-weight",
		WeighInAt:   testWeighIn,
		AsOf:        &asOf,
	})
	require.NoError(t, err)
	assert.Equal(t, saved, *got)
	assert.Equal(t, domain.ProtocolMakeWeight, saved.Protocol)
	require.NotNil(t, saved.AsOf)
	assert.True(t, saved.AsOf.Equal(asOf))
}
