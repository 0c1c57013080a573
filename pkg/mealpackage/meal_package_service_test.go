package mealpackage_test

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"
	"Meal-Preorder-Backend/internal/testutil"
	"Meal-Preorder-Backend/internal/utils/storage"
	"Meal-Preorder-Backend/pkg/mealpackage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cdn = "https://cdn.test/"

type fakeStorage struct {
	uploadErr error
	uploaded  []string
	deleted   []string
}

func (f *fakeStorage) UploadFile(name string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	key := folder + "/" + name + ".png"
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeStorage) UpdateFile(objectKey string, _ *multipart.FileHeader, _ ...string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploaded = append(f.uploaded, objectKey)
	return objectKey, nil
}

func (f *fakeStorage) DeleteFile(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeStorage) GetPublicLinkKey(objectKey string) string {
	return cdn + objectKey
}

func (f *fakeStorage) GetObjectKeyFromLink(link string) string {
	if len(link) <= len(cdn) || link[:len(cdn)] != cdn {
		return ""
	}
	return link[len(cdn):]
}

func ptr[T any](v T) *T {
	return &v
}

func TestCreateMealPackage_Defaults(t *testing.T) {
	db := testutil.NewDB(t)
	service := mealpackage.NewMealPackageService(mealpackage.NewMealPackageRepository(db), &fakeStorage{})

	res, err := service.CreateMealPackage(context.Background(), domain.CreateMealPackageRequest{
		Name:      "  Gói 10 phần ",
		Turns:     10,
		Price:     350000.456,
		ValidDays: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, "Gói 10 phần", res.Name)
	assert.Equal(t, entities.PackageTypeNormal, res.PackageType)
	assert.True(t, res.IsActive)
	assert.True(t, res.Price.Equal(decimal.RequireFromString("350000.46")))

	got, err := service.GetMealPackage(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)
}

func TestGetMealPackages_FiltersActive(t *testing.T) {
	db := testutil.NewDB(t)
	service := mealpackage.NewMealPackageService(mealpackage.NewMealPackageRepository(db), &fakeStorage{})

	testutil.CreateMealPackage(t, db, entities.PackageTypeNormal, 20, 60, 650000)
	small := testutil.CreateMealPackage(t, db, entities.PackageTypeNormal, 5, 15, 180000)
	hidden := testutil.CreateMealPackage(t, db, entities.PackageTypeNoRice, 10, 30, 300000)
	require.NoError(t, db.Model(hidden).Update("is_active", false).Error)

	all, err := service.GetMealPackages(context.Background(), domain.ListMealPackagesRequest{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, small.ID.String(), all[0].ID)

	active, err := service.GetMealPackages(context.Background(), domain.ListMealPackagesRequest{IsActive: ptr(true)})
	require.NoError(t, err)
	assert.Len(t, active, 2)
	for _, p := range active {
		assert.NotEqual(t, hidden.ID.String(), p.ID)
	}
}

func TestUpdateMealPackage_FrozenOnceReferenced(t *testing.T) {
	db := testutil.NewDB(t)
	service := mealpackage.NewMealPackageService(mealpackage.NewMealPackageRepository(db), &fakeStorage{})
	template := testutil.CreateMealPackage(t, db, entities.PackageTypeNormal, 10, 30, 350000)

	res, err := service.UpdateMealPackage(context.Background(), template.ID.String(), domain.UpdateMealPackageRequest{
		Turns: ptr(12),
		Price: ptr(400000.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 12, res.Turns)

	user := testutil.CreateUser(t, db, domain.RoleUser)
	require.NoError(t, db.Omit("User", "MealPackage").Create(&entities.PurchaseRequest{
		ID:            uuid.New(),
		UserID:        user.ID,
		MealPackageID: template.ID,
		Status:        entities.PurchaseStatusPending,
		RequestedAt:   time.Now().UTC(),
	}).Error)

	_, err = service.UpdateMealPackage(context.Background(), template.ID.String(), domain.UpdateMealPackageRequest{Turns: ptr(15)})
	assert.ErrorIs(t, err, domain.ErrPackageInUse)

	// unchanged terms and the active flag remain editable
	res, err = service.UpdateMealPackage(context.Background(), template.ID.String(), domain.UpdateMealPackageRequest{
		Turns:    ptr(12),
		IsActive: ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, res.IsActive)

	err = service.DeleteMealPackage(context.Background(), template.ID.String())
	assert.ErrorIs(t, err, domain.ErrPackageInUse)
}

func TestDeleteMealPackage_RemovesQRCode(t *testing.T) {
	db := testutil.NewDB(t)
	s3 := &fakeStorage{}
	service := mealpackage.NewMealPackageService(mealpackage.NewMealPackageRepository(db), s3)
	template := testutil.CreateMealPackage(t, db, entities.PackageTypeNormal, 10, 30, 350000)
	require.NoError(t, db.Model(template).Update("qr_code_image", cdn+"qr-codes/old.png").Error)

	require.NoError(t, service.DeleteMealPackage(context.Background(), template.ID.String()))
	assert.Equal(t, []string{"qr-codes/old.png"}, s3.deleted)

	_, err := service.GetMealPackage(context.Background(), template.ID.String())
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
	assert.ErrorIs(t, service.DeleteMealPackage(context.Background(), template.ID.String()), domain.ErrPackageNotFound)
}

func TestUploadQRCode(t *testing.T) {
	db := testutil.NewDB(t)
	s3 := &fakeStorage{}
	service := mealpackage.NewMealPackageService(mealpackage.NewMealPackageRepository(db), s3)
	template := testutil.CreateMealPackage(t, db, entities.PackageTypeNormal, 10, 30, 350000)
	file := &multipart.FileHeader{Filename: "qr.png"}

	res, err := service.UploadQRCode(context.Background(), template.ID.String(), file)
	require.NoError(t, err)
	assert.Equal(t, cdn+"qr-codes/"+template.ID.String()+".png", res.QRCodeImage)

	// a second upload overwrites the same object
	_, err = service.UploadQRCode(context.Background(), template.ID.String(), file)
	require.NoError(t, err)
	require.Len(t, s3.uploaded, 2)
	assert.Equal(t, s3.uploaded[0], s3.uploaded[1])

	s3.uploadErr = storage.ErrFileTypeNotAllowed
	_, err = service.UploadQRCode(context.Background(), template.ID.String(), file)
	assert.ErrorIs(t, err, domain.ErrInvalidImageFormat)
}
