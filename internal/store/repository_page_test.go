// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/models"
)

// newMockDB wires a sqlmock connection into the store's DB wrapper.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &DB{DB: conn, logger: logger.Nop()}, mock
}

func pageColumns() []string {
	return []string{"id", "url_name", "url_path", "title", "created_at"}
}

func moduleColumns() []string {
	return []string{"id", "page_id", "category_id", "title", "content"}
}

func TestPageRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPageRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(createPage)).
		WithArgs("home", "/", "Home").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), models.MutPage{URLName: "home", URLPath: "/", Title: "Home"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageRepository_Create_DuplicatePathIsIgnored(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPageRepository(db, logger.Nop())

	// ON CONFLICT DO NOTHING: zero affected rows, no error
	mock.ExpectExec(regexp.QuoteMeta(createPage)).
		WithArgs("home", "/", "Home").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Create(context.Background(), models.MutPage{URLName: "home", URLPath: "/", Title: "Home"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPageRepository(db, logger.Nop())

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(getPageByID)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(pageColumns()).
			AddRow(int64(7), "about", "/about", "About", createdAt))

	page, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, models.Page{
		ID: 7, URLName: "about", URLPath: "/about", Title: "About", CreatedAt: createdAt,
	}, page)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPageRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(getPageByID)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(pageColumns()))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageRepository_Update_ReportsAffectedRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPageRepository(db, logger.Nop())

	page := models.MutPage{URLName: "about", URLPath: "/about", Title: "About"}
	query, args, err := buildUpdatePageQuery(3, page)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(query)).
		WithArgs(args[0], args[1], args[2], args[3]).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Update(context.Background(), 3, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageRepository_Delete_ZeroRowsIsNotAnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPageRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(deletePage)).
		WithArgs(int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), 12)
	require.NoError(t, err)
	assert.Zero(t, affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageRepository_GetByURL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPageRepository(db, logger.Nop())

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(getPageByURL)).
		WithArgs("/").
		WillReturnRows(sqlmock.NewRows(pageColumns()).
			AddRow(int64(1), "home", "/", "Home", createdAt))

	flatQuery, _, err := buildSelectModulesQuery(
		sq.And{sq.Eq{"page_id": int64(1)}, sq.Eq{"category_id": nil}})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(flatQuery)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(moduleColumns()).
			AddRow(int64(10), int64(1), nil, "header", "<h1>hi</h1>").
			AddRow(int64(11), int64(1), nil, "footer", "bye"))

	groupedQuery, _, err := buildSelectGroupedModulesQuery(1)
	require.NoError(t, err)

	categoryID := int64(4)
	mock.ExpectQuery(regexp.QuoteMeta(groupedQuery)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"c.id", "c.page_id", "c.title",
			"m.id", "m.page_id", "m.category_id", "m.title", "m.content",
		}).
			AddRow(categoryID, int64(1), "links", int64(20), int64(1), categoryID, "a", "one").
			AddRow(categoryID, int64(1), "links", int64(21), int64(1), categoryID, "b", "two"))

	page, flat, groups, err := repo.GetByURL(context.Background(), "/")
	require.NoError(t, err)

	assert.Equal(t, int64(1), page.ID)
	require.Len(t, flat, 2)
	assert.Equal(t, "header", flat[0].Title)

	require.Len(t, groups, 1)
	assert.Equal(t, "links", groups[0].Category.Title)
	require.Len(t, groups[0].Modules, 2)
	assert.Equal(t, "one", groups[0].Modules[0].Content)
	assert.Equal(t, "two", groups[0].Modules[1].Content)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageRepository_GetByURL_UnknownPath(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPageRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(getPageByURL)).
		WithArgs("/missing").
		WillReturnRows(sqlmock.NewRows(pageColumns()))

	_, _, _, err := repo.GetByURL(context.Background(), "/missing")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageRepository_GetByURL_GroupsStayContiguousAcrossCategories(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPageRepository(db, logger.Nop())

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(getPageByURL)).
		WithArgs("/").
		WillReturnRows(sqlmock.NewRows(pageColumns()).
			AddRow(int64(1), "home", "/", "Home", createdAt))

	flatQuery, _, err := buildSelectModulesQuery(
		sq.And{sq.Eq{"page_id": int64(1)}, sq.Eq{"category_id": nil}})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(flatQuery)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(moduleColumns()))

	groupedQuery, _, err := buildSelectGroupedModulesQuery(1)
	require.NoError(t, err)

	first, second := int64(4), int64(5)
	mock.ExpectQuery(regexp.QuoteMeta(groupedQuery)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"c.id", "c.page_id", "c.title",
			"m.id", "m.page_id", "m.category_id", "m.title", "m.content",
		}).
			AddRow(first, int64(1), "links", int64(20), int64(1), first, "a", "one").
			AddRow(second, int64(1), "banners", int64(30), int64(1), second, "x", "top").
			AddRow(second, int64(1), "banners", int64(31), int64(1), second, "y", "bottom"))

	_, _, groups, err := repo.GetByURL(context.Background(), "/")
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, "links", groups[0].Category.Title)
	assert.Len(t, groups[0].Modules, 1)
	assert.Equal(t, "banners", groups[1].Category.Title)
	assert.Len(t, groups[1].Modules, 2)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageRepository_GetWithModules(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPageRepository(db, logger.Nop())

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(getPageByID)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(pageColumns()).
			AddRow(int64(2), "blog", "/blog", "Blog", createdAt))

	allQuery, _, err := buildSelectModulesQuery(sq.Eq{"page_id": int64(2)})
	require.NoError(t, err)

	categoryID := int64(3)
	mock.ExpectQuery(regexp.QuoteMeta(allQuery)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(moduleColumns()).
			AddRow(int64(1), int64(2), nil, "intro", "welcome").
			AddRow(int64(2), int64(2), categoryID, "post", "entry"))

	page, modules, err := repo.GetWithModules(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "blog", page.URLName)
	require.Len(t, modules, 2)
	assert.Nil(t, modules[0].CategoryID)
	require.NotNil(t, modules[1].CategoryID)
	assert.Equal(t, categoryID, *modules[1].CategoryID)

	require.NoError(t, mock.ExpectationsWereMet())
}
