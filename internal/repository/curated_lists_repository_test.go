package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/internal/repository"
	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

func TestAddListItem(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewCuratedListsRepo(conn)
	item := entity.CuratedListItem{
		ListID:  uuid.New(),
		PlaceID: "ChIJtest123",
		Note:    "go on weekends",
	}
	query := regexp.QuoteMeta(`INSERT INTO curated_list_items (list_id, place_id, note, position)
			VALUES ($1, $2, $3, (SELECT COUNT(*) FROM curated_list_items WHERE list_id = $1))
			RETURNING id, position;`)
	t.Run("appended at the end", func(t *testing.T) {
		itemID := uuid.New()
		conn.ExpectQuery(query).
			WithArgs(item.ListID, item.PlaceID, item.Note).
			WillReturnRows(pgxmock.NewRows([]string{"id", "position"}).AddRow(itemID, 2))
		err := repo.AddItem(ctx, &item)
		assert.NoError(t, err)
		assert.Equal(t, itemID, item.ID)
		assert.Equal(t, 2, item.Position)
	})
	t.Run("duplicate place", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(item.ListID, item.PlaceID, item.Note).
			WillReturnError(&pgconn.PgError{
				Code: "23505",
			})
		err := repo.AddItem(ctx, &item)
		assert.ErrorIs(t, err, errorvalues.ErrListItemExists)
	})
	t.Run("unexist list", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(item.ListID, item.PlaceID, item.Note).
			WillReturnError(&pgconn.PgError{
				Code: "23503",
			})
		err := repo.AddItem(ctx, &item)
		assert.ErrorIs(t, err, errorvalues.ErrListNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(item.ListID, item.PlaceID, item.Note).
			WillReturnError(errors.New("db error"))
		err := repo.AddItem(ctx, &item)
		assert.Error(t, err)
	})
}

func TestRemoveItemAndReindex(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewCuratedListsRepo(conn)
	listID := uuid.New()
	itemID := uuid.New()
	deleteQuery := regexp.QuoteMeta(`DELETE FROM curated_list_items WHERE id = $1 AND list_id = $2;`)
	reindexQuery := regexp.QuoteMeta(`WITH ranked AS (
				SELECT id, ROW_NUMBER() OVER (ORDER BY position) - 1 AS new_position
				FROM curated_list_items WHERE list_id = $1
			)
			UPDATE curated_list_items AS c SET position = r.new_position
			FROM ranked AS r WHERE c.id = r.id AND c.position <> r.new_position;`)
	t.Run("removed and renumbered in one tx", func(t *testing.T) {
		conn.ExpectBegin()
		conn.ExpectExec(deleteQuery).
			WithArgs(itemID, listID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		conn.ExpectExec(reindexQuery).
			WithArgs(listID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 2))
		conn.ExpectCommit()
		err := repo.RemoveItemAndReindex(ctx, listID, itemID)
		assert.NoError(t, err)
		assert.NoError(t, conn.ExpectationsWereMet())
	})
	t.Run("unexist item rolls back", func(t *testing.T) {
		conn.ExpectBegin()
		conn.ExpectExec(deleteQuery).
			WithArgs(itemID, listID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		conn.ExpectRollback()
		err := repo.RemoveItemAndReindex(ctx, listID, itemID)
		assert.ErrorIs(t, err, errorvalues.ErrListItemNotFound)
		assert.NoError(t, conn.ExpectationsWereMet())
	})
	t.Run("reindex error rolls back", func(t *testing.T) {
		conn.ExpectBegin()
		conn.ExpectExec(deleteQuery).
			WithArgs(itemID, listID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		conn.ExpectExec(reindexQuery).
			WithArgs(listID).
			WillReturnError(errors.New("db error"))
		conn.ExpectRollback()
		err := repo.RemoveItemAndReindex(ctx, listID, itemID)
		assert.Error(t, err)
		assert.NoError(t, conn.ExpectationsWereMet())
	})
}

func TestCreateList(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewCuratedListsRepo(conn)
	list := entity.CuratedList{
		OwnerID:     uuid.New(),
		Title:       "Date night",
		Description: "quiet places",
	}
	query := regexp.QuoteMeta(`INSERT INTO curated_lists (owner_id, title, description) VALUES ($1, $2, $3) RETURNING id;`)
	t.Run("created", func(t *testing.T) {
		id := uuid.New()
		conn.ExpectQuery(query).
			WithArgs(list.OwnerID, list.Title, list.Description).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))
		result, err := repo.CreateList(ctx, &list)
		assert.NoError(t, err)
		assert.Equal(t, id, result)
	})
	t.Run("unexist owner", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(list.OwnerID, list.Title, list.Description).
			WillReturnError(&pgconn.PgError{
				Code: "23503",
			})
		_, err := repo.CreateList(ctx, &list)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(list.OwnerID, list.Title, list.Description).
			WillReturnError(errors.New("db error"))
		_, err := repo.CreateList(ctx, &list)
		assert.Error(t, err)
	})
}
