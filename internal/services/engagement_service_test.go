package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeenko/strapshop-backend/internal/models"
)

func TestLike_Idempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	product := seedProduct(t, db, models.Product{SKU: "S-1", Name: "Classic Strap", Price: 19.90})
	owner := models.VisitorOwner("v1")

	count, err := svc.Like(context.Background(), product.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// A second like from the same owner must not create a duplicate.
	count, err = svc.Like(context.Background(), product.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var rows int64
	require.NoError(t, db.Model(&models.ProductLike{}).Where("product_id = ?", product.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
	assert.Equal(t, int64(1), loadProduct(t, db, product.ID).LikeCount)
}

func TestLike_DistinctOwnersBothCount(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	product := seedProduct(t, db, models.Product{SKU: "S-2", Name: "Metal Band", Price: 39.00})

	count, err := svc.Like(context.Background(), product.ID, models.CustomerOwner(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = svc.Like(context.Background(), product.ID, models.VisitorOwner("v1"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.Equal(t, int64(2), loadProduct(t, db, product.ID).LikeCount)
}

func TestLike_InvalidOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	product := seedProduct(t, db, models.Product{SKU: "S-3", Name: "Strap", Price: 10})

	_, err := svc.Like(context.Background(), product.ID, models.Owner{})
	assert.ErrorIs(t, err, ErrInvalidOwner)

	// Both sides set is just as invalid as neither.
	customerID := uint(7)
	token := "v7"
	both := models.Owner{CustomerID: &customerID, VisitorID: &token}
	_, err = svc.Like(context.Background(), product.ID, both)
	assert.ErrorIs(t, err, ErrInvalidOwner)
}

func TestLike_ProductNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)

	_, err := svc.Like(context.Background(), 9999, models.VisitorOwner("v1"))
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUnlike_AbsentLikeIsNoop(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	product := seedProduct(t, db, models.Product{SKU: "S-4", Name: "Strap", Price: 10})

	count, err := svc.Unlike(context.Background(), product.ID, models.VisitorOwner("v1"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, int64(0), loadProduct(t, db, product.ID).LikeCount)
}

func TestUnlike_RemovesOwnLikeOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	product := seedProduct(t, db, models.Product{SKU: "S-5", Name: "Strap", Price: 10})

	_, err := svc.Like(context.Background(), product.ID, models.CustomerOwner(1))
	require.NoError(t, err)
	_, err = svc.Like(context.Background(), product.ID, models.VisitorOwner("v1"))
	require.NoError(t, err)

	count, err := svc.Unlike(context.Background(), product.ID, models.VisitorOwner("v1"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, int64(1), loadProduct(t, db, product.ID).LikeCount)
}

func TestRecordView_SameDaySameOwnerCountsOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	product := seedProduct(t, db, models.Product{SKU: "S-6", Name: "Strap", Price: 10})
	owner := models.VisitorOwner("v1")

	require.NoError(t, svc.RecordView(context.Background(), product.ID, owner, "10.0.0.1", "ua"))
	require.NoError(t, svc.RecordView(context.Background(), product.ID, owner, "10.0.0.1", "ua"))

	var rows int64
	require.NoError(t, db.Model(&models.ProductView{}).Where("product_id = ?", product.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
	assert.Equal(t, int64(1), loadProduct(t, db, product.ID).ViewCount)
}

func TestRecordView_DistinctOwnersSameDay(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	product := seedProduct(t, db, models.Product{SKU: "S-7", Name: "Strap", Price: 10})

	require.NoError(t, svc.RecordView(context.Background(), product.ID, models.CustomerOwner(1), "10.0.0.1", "ua"))
	require.NoError(t, svc.RecordView(context.Background(), product.ID, models.VisitorOwner("v1"), "10.0.0.2", "ua"))

	assert.Equal(t, int64(2), loadProduct(t, db, product.ID).ViewCount)
}

func TestRecordView_ZeroOwnerIsSkipped(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	product := seedProduct(t, db, models.Product{SKU: "S-8", Name: "Strap", Price: 10})

	require.NoError(t, svc.RecordView(context.Background(), product.ID, models.Owner{}, "10.0.0.1", "ua"))

	var rows int64
	require.NoError(t, db.Model(&models.ProductView{}).Count(&rows).Error)
	assert.Equal(t, int64(0), rows)
}

func TestRecordView_ProductNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)

	err := svc.RecordView(context.Background(), 9999, models.VisitorOwner("v1"), "10.0.0.1", "ua")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSetRating_Boundaries(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	product := seedProduct(t, db, models.Product{SKU: "S-9", Name: "Strap", Price: 10})
	owner := models.CustomerOwner(1)

	_, _, err := svc.SetRating(context.Background(), product.ID, owner, 0, "")
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, _, err = svc.SetRating(context.Background(), product.ID, owner, 6, "")
	assert.ErrorIs(t, err, ErrInvalidRating)

	avg, my, err := svc.SetRating(context.Background(), product.ID, owner, 1, "")
	require.NoError(t, err)
	assert.Equal(t, 1.0, avg)
	assert.Equal(t, 1, my)

	avg, my, err = svc.SetRating(context.Background(), product.ID, owner, 5, "")
	require.NoError(t, err)
	assert.Equal(t, 5.0, avg)
	assert.Equal(t, 5, my)
}

func TestSetRating_UpsertReplacesSingleRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	product := seedProduct(t, db, models.Product{SKU: "S-10", Name: "Strap", Price: 10})
	owner := models.CustomerOwner(1)

	_, _, err := svc.SetRating(context.Background(), product.ID, owner, 4, "nice")
	require.NoError(t, err)
	avg, my, err := svc.SetRating(context.Background(), product.ID, owner, 5, "great")
	require.NoError(t, err)
	assert.Equal(t, 5.0, avg)
	assert.Equal(t, 5, my)

	var ratings []models.ProductRating
	require.NoError(t, db.Where("product_id = ?", product.ID).Find(&ratings).Error)
	require.Len(t, ratings, 1)
	assert.Equal(t, 5, ratings[0].Rating)
	assert.Equal(t, "great", ratings[0].Comment)
}

func TestSetRating_AverageIsRecomputedFromCurrentRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	product := seedProduct(t, db, models.Product{SKU: "S-11", Name: "Strap", Price: 10})

	_, _, err := svc.SetRating(context.Background(), product.ID, models.CustomerOwner(1), 5, "")
	require.NoError(t, err)
	avg, _, err := svc.SetRating(context.Background(), product.ID, models.VisitorOwner("v1"), 4, "")
	require.NoError(t, err)
	assert.Equal(t, 4.5, avg)

	avg, _, err = svc.SetRating(context.Background(), product.ID, models.VisitorOwner("v2"), 4, "")
	require.NoError(t, err)
	assert.Equal(t, 4.33, avg)
	assert.Equal(t, 4.33, loadProduct(t, db, product.ID).AvgRating)
}

func TestDeleteRating_RecomputesAndIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	product := seedProduct(t, db, models.Product{SKU: "S-12", Name: "Strap", Price: 10})

	_, _, err := svc.SetRating(context.Background(), product.ID, models.CustomerOwner(1), 5, "")
	require.NoError(t, err)
	_, _, err = svc.SetRating(context.Background(), product.ID, models.VisitorOwner("v1"), 3, "")
	require.NoError(t, err)

	avg, err := svc.DeleteRating(context.Background(), product.ID, models.VisitorOwner("v1"))
	require.NoError(t, err)
	assert.Equal(t, 5.0, avg)

	// Deleting again is a no-op.
	avg, err = svc.DeleteRating(context.Background(), product.ID, models.VisitorOwner("v1"))
	require.NoError(t, err)
	assert.Equal(t, 5.0, avg)

	avg, err = svc.DeleteRating(context.Background(), product.ID, models.CustomerOwner(1))
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
	assert.Equal(t, 0.0, loadProduct(t, db, product.ID).AvgRating)
}

func TestOwnerXOR_StorageConstraint(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, models.Product{SKU: "S-13", Name: "Strap", Price: 10})

	// Neither side set must be rejected by the table check constraint.
	err := db.Create(&models.ProductLike{ProductID: product.ID}).Error
	assert.Error(t, err)

	customerID := uint(1)
	token := "v1"
	err = db.Create(&models.ProductLike{ProductID: product.ID, CustomerID: &customerID, VisitorID: &token}).Error
	assert.Error(t, err)
}
