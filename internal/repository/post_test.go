package repository

import (
	"context"
	"regexp"
	"testing"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "Test Post", Content: "Content", Author: "aria"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("With Identity Computes Bookmarked", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "title", "content", "author", "comments_count", "bookmarks_count", "bookmarked"}).
			AddRow(1, "Post 1", "Body", "aria", 5, 2, true)
		// applyPostDetails puts the EXISTS argument before the WHERE arguments
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*,`)).
			WithArgs("reader", 1, 1).
			WillReturnRows(rows)

		post, err := repo.GetByID(ctx, 1, "reader")
		require.NoError(t, err)
		assert.Equal(t, "Post 1", post.Title)
		assert.Equal(t, 5, post.CommentsCount)
		assert.Equal(t, 2, post.BookmarksCount)
		assert.True(t, post.Bookmarked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Anonymous", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "title", "bookmarked"}).
			AddRow(1, "Post 1", false)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*,`)).
			WithArgs(1, 1).
			WillReturnRows(rows)

		post, err := repo.GetByID(ctx, 1, "")
		require.NoError(t, err)
		assert.False(t, post.Bookmarked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found Maps To AppError", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*,`)).
			WithArgs(99, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		post, err := repo.GetByID(ctx, 99, "")
		assert.Nil(t, post)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_ListByAuthor(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "title", "author"}).
			AddRow(2, "Second", "aria").
			AddRow(1, "First", "aria")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*,`)).
			WithArgs("aria", 10).
			WillReturnRows(rows)

		posts, err := repo.ListByAuthor(ctx, "aria", 10, 0, "")
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "Second", posts[0].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Author Returns Empty List", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*,`)).
			WithArgs("ghost", 10).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		posts, err := repo.ListByAuthor(ctx, "ghost", 10, 0, "")
		assert.NoError(t, err)
		assert.Empty(t, posts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "deleted_at"=`)).
		WithArgs(sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
