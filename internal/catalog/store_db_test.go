package catalog

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columnNames = []string{
	"id", "name", "description", "price", "sale_price", "image_url", "category", "subcategory",
	"is_new_arrival", "is_best_seller", "is_on_sale", "in_stock", "rating", "review_count",
}

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresStore(db), mock
}

func TestPostgresStore_Get(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows(columnNames).AddRow(
		int64(4), "Cat Whisker Denim Jeans", "denim", 59.99, 45.99, "img", "men", nil,
		false, false, true, true, 5.0, 56,
	)
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(rows)

	p, ok, err := s.Get(context.Background(), 4)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Cat Whisker Denim Jeans", p.Name)
	require.NotNil(t, p.SalePrice)
	assert.Equal(t, 45.99, *p.SalePrice)
	assert.Nil(t, p.Subcategory)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetMissing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs(int64(77)).
		WillReturnError(sql.ErrNoRows)

	_, ok, err := s.Get(context.Background(), 77)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostgresStore_FeaturedPassesLimit(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE is_best_seller OR is_new_arrival")).
		WithArgs(FeaturedLimit).
		WillReturnRows(sqlmock.NewRows(columnNames))

	out, err := s.Featured(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SetRatingMissingRow(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET rating = $2, review_count = $3")).
		WithArgs(int64(9), 4.5, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.SetRating(context.Background(), 9, 4.5, 2)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestPostgresStore_SeedInsertsInTx(t *testing.T) {
	s, mock := newMockStore(t)
	seed := SeedProducts()[:2]

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("ON CONFLICT (id) DO NOTHING"))
	for range seed {
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, s.Seed(context.Background(), seed))
	require.NoError(t, mock.ExpectationsWereMet())
}
