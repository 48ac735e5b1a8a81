package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestCouponFindByCode_LowercasesInput(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCouponRepository(gormDB)

	storeID := uuid.New()
	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "store_id", "code", "type", "value", "usage_limit", "used_count", "active", "created_at", "updated_at"}).
		AddRow(id, storeID, "SAVE10", models.CouponTypePercentage, 10.0, 0, 0, true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "coupons"`)).
		WithArgs(storeID, "save10", true, 1).
		WillReturnRows(rows)

	coupon, err := repo.FindByCode(context.Background(), storeID, "Save10")
	assert.NoError(t, err)
	assert.Equal(t, "SAVE10", coupon.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCouponFindByCode_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCouponRepository(gormDB)

	storeID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "coupons"`)).
		WithArgs(storeID, "ghost", true).
		WillReturnRows(sqlmock.NewRows([]string{}))

	coupon, err := repo.FindByCode(context.Background(), storeID, "GHOST")
	assert.Error(t, err)
	assert.Nil(t, coupon)
}

func TestCouponIncrementUsedCount(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCouponRepository(gormDB)

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "coupons" SET "used_count"=used_count + 1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.IncrementUsedCount(context.Background(), id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCouponDelete_ScopedToStore(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCouponRepository(gormDB)

	storeID := uuid.New()
	couponID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "coupons" SET "deleted_at"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), storeID, couponID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "a foreign store's coupon deletes zero rows")
}

func TestCouponSetActive(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCouponRepository(gormDB)

	storeID := uuid.New()
	couponID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "coupons"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SetActive(context.Background(), storeID, couponID, false)
	assert.NoError(t, err)
}
