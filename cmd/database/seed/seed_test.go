package seed_test

import (
	"testing"

	"Meal-Preorder-Backend/cmd/database/seed"
	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"
	"Meal-Preorder-Backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, seed.Seed(db))
	require.NoError(t, seed.Seed(db))

	var admins []entities.User
	require.NoError(t, db.Where("role = ?", domain.RoleAdmin).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@example.com", admins[0].Email)
	assert.True(t, admins[0].IsVerified)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admins[0].Password), []byte("admin123")))

	var users, packages, noRice int64
	require.NoError(t, db.Model(&entities.User{}).Where("role = ?", domain.RoleUser).Count(&users).Error)
	require.NoError(t, db.Model(&entities.MealPackage{}).Count(&packages).Error)
	require.NoError(t, db.Model(&entities.MealPackage{}).Where("package_type = ?", entities.PackageTypeNoRice).Count(&noRice).Error)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 10, packages)
	assert.EqualValues(t, 5, noRice)
}
