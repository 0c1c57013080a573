package userpackage_test

import (
	"context"
	"testing"
	"time"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"
	"Meal-Preorder-Backend/internal/testutil"
	"Meal-Preorder-Backend/pkg/userpackage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsable(t *testing.T) {
	now := time.Date(2025, time.March, 10, 3, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		pkg  entities.UserPackage
		want bool
	}{
		{name: "usable", pkg: entities.UserPackage{IsActive: true, RemainingTurns: 1, ExpiresAt: now.Add(time.Second)}, want: true},
		{name: "inactive", pkg: entities.UserPackage{IsActive: false, RemainingTurns: 1, ExpiresAt: now.Add(time.Hour)}},
		{name: "no turns", pkg: entities.UserPackage{IsActive: true, RemainingTurns: 0, ExpiresAt: now.Add(time.Hour)}},
		{name: "expires now", pkg: entities.UserPackage{IsActive: true, RemainingTurns: 3, ExpiresAt: now}},
		{name: "expired", pkg: entities.UserPackage{IsActive: true, RemainingTurns: 3, ExpiresAt: now.Add(-time.Hour)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.pkg.Usable(now))
		})
	}
}

func TestFindChargeCandidate(t *testing.T) {
	db := testutil.NewDB(t)
	repo := userpackage.NewUserPackageRepository(db)
	now := time.Now().UTC()
	user := testutil.CreateUser(t, db, domain.RoleUser)

	_, err := repo.FindChargeCandidate(context.Background(), user.ID.String(), entities.PackageTypeNormal, now)
	require.Error(t, err)

	testutil.CreateUserPackage(t, db, user.ID, entities.PackageTypeNormal, 4, now, now.AddDate(0, 0, 9))
	soonest := testutil.CreateUserPackage(t, db, user.ID, entities.PackageTypeNormal, 4, now, now.AddDate(0, 0, 3))
	testutil.CreateUserPackage(t, db, user.ID, entities.PackageTypeNoRice, 4, now, now.AddDate(0, 0, 1))

	got, err := repo.FindChargeCandidate(context.Background(), user.ID.String(), entities.PackageTypeNormal, now)
	require.NoError(t, err)
	assert.Equal(t, soonest.ID, got.ID)

	count, err := repo.CountUsable(context.Background(), now)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestGetMyPackages(t *testing.T) {
	db := testutil.NewDB(t)
	clock := testutil.NewFixedClock(time.Now())
	service := userpackage.NewUserPackageService(userpackage.NewUserPackageRepository(db), clock)
	now := clock.Now()
	user := testutil.CreateUser(t, db, domain.RoleUser)

	usable := testutil.CreateUserPackage(t, db, user.ID, entities.PackageTypeNormal, 4, now, now.AddDate(0, 0, 9))
	testutil.CreateUserPackage(t, db, user.ID, entities.PackageTypeNormal, 4, now.AddDate(0, 0, -60), now.AddDate(0, 0, -30))

	all, err := service.GetMyPackages(context.Background(), user.ID.String())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, usable.ID.String(), all[0].ID)
	assert.True(t, all[0].IsUsable)
	assert.False(t, all[1].IsUsable)

	active, err := service.GetMyActivePackages(context.Background(), user.ID.String())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, usable.ID.String(), active[0].ID)
	assert.NotEmpty(t, active[0].MealPackageName)
}

func TestSetActivePackage(t *testing.T) {
	db := testutil.NewDB(t)
	clock := testutil.NewFixedClock(time.Now())
	repo := userpackage.NewUserPackageRepository(db)
	service := userpackage.NewUserPackageService(repo, clock)
	now := clock.Now()

	user := testutil.CreateUser(t, db, domain.RoleUser)
	stranger := testutil.CreateUser(t, db, domain.RoleUser)
	mine := testutil.CreateUserPackage(t, db, user.ID, entities.PackageTypeNoRice, 4, now, now.AddDate(0, 0, 9))
	drained := testutil.CreateUserPackage(t, db, user.ID, entities.PackageTypeNormal, 0, now, now.AddDate(0, 0, 9))
	theirs := testutil.CreateUserPackage(t, db, stranger.ID, entities.PackageTypeNormal, 4, now, now.AddDate(0, 0, 9))

	res, err := service.SetActivePackage(context.Background(), user.ID.String(), mine.ID.String())
	require.NoError(t, err)
	assert.Equal(t, mine.ID.String(), res.ID)

	active, err := repo.GetActiveUserPackage(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, mine.ID, active.ID)

	_, err = service.SetActivePackage(context.Background(), user.ID.String(), theirs.ID.String())
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)

	_, err = service.SetActivePackage(context.Background(), user.ID.String(), drained.ID.String())
	assert.ErrorIs(t, err, domain.ErrPackageUnavailable)

	_, err = service.SetActivePackage(context.Background(), user.ID.String(), "nope")
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}
