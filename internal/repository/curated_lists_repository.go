package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
	"github.com/Kwazyyy/whereto-sub001/pkg/entity"
)

type CuratedListsRepository struct {
	conn PgConnection
}

func NewCuratedListsRepo(conn PgConnection) *CuratedListsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for curatedListsRepo: " + err.Error())
	}
	return &CuratedListsRepository{
		conn: conn,
	}
}

func (clr *CuratedListsRepository) CreateList(ctx context.Context, list *entity.CuratedList) (uuid.UUID, error) {
	if list == nil {
		return uuid.UUID{}, errors.New("list is nil")
	}
	var id uuid.UUID
	row := clr.conn.QueryRow(ctx,
		`INSERT INTO curated_lists (owner_id, title, description) VALUES ($1, $2, $3) RETURNING id;`,
		list.OwnerID, list.Title, list.Description,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrUserNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating curated list db error: " + err.Error())
	}
	return id, nil
}

func (clr *CuratedListsRepository) GetListByID(ctx context.Context, id uuid.UUID) (*entity.CuratedList, error) {
	var list entity.CuratedList
	list.ID = id
	row := clr.conn.QueryRow(ctx,
		`SELECT owner_id, title, description, created_at FROM curated_lists WHERE id = $1;`, id)
	if err := row.Scan(&list.OwnerID, &list.Title, &list.Description, &list.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrListNotFound
		}
		return nil, errors.New("getting curated list by id error: " + err.Error())
	}
	return &list, nil
}

func (clr *CuratedListsRepository) GetListsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.CuratedList, error) {
	rows, err := clr.conn.Query(ctx,
		`SELECT id, owner_id, title, description, created_at
		FROM curated_lists WHERE owner_id = $1 ORDER BY created_at DESC;`, ownerID)
	if err != nil {
		return nil, errors.New("getting lists by owner error: " + err.Error())
	}
	defer rows.Close()
	lists := make([]*entity.CuratedList, 0)
	for rows.Next() {
		l := entity.CuratedList{}
		err = rows.Scan(&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.CreatedAt)
		if err != nil {
			return nil, errors.New("curated list row parsing error: " + err.Error())
		}
		lists = append(lists, &l)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected curated list rows error: " + rows.Err().Error())
	}
	return lists, nil
}

func (clr *CuratedListsRepository) GetItems(ctx context.Context, listID uuid.UUID) ([]*entity.CuratedListItem, error) {
	rows, err := clr.conn.Query(ctx,
		`SELECT id, list_id, place_id, note, position
		FROM curated_list_items WHERE list_id = $1 ORDER BY position;`, listID)
	if err != nil {
		return nil, errors.New("getting list items error: " + err.Error())
	}
	defer rows.Close()
	items := make([]*entity.CuratedListItem, 0)
	for rows.Next() {
		it := entity.CuratedListItem{}
		err = rows.Scan(&it.ID, &it.ListID, &it.PlaceID, &it.Note, &it.Position)
		if err != nil {
			return nil, errors.New("list item row parsing error: " + err.Error())
		}
		items = append(items, &it)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected list item rows error: " + rows.Err().Error())
	}
	return items, nil
}

// AddItem appends at the end of the list. Position comes from a COUNT(*)
// subquery in the same statement; two adds racing on the same list may still
// pick the same position, which the next RemoveItemAndReindex renumbers away.
// The (list_id, place_id) unique index reports duplicates.
func (clr *CuratedListsRepository) AddItem(ctx context.Context, item *entity.CuratedListItem) error {
	if item == nil {
		return errors.New("item is nil")
	}
	row := clr.conn.QueryRow(ctx,
		`INSERT INTO curated_list_items (list_id, place_id, note, position)
		VALUES ($1, $2, $3, (SELECT COUNT(*) FROM curated_list_items WHERE list_id = $1))
		RETURNING id, position;`,
		item.ListID, item.PlaceID, item.Note,
	)
	if err := row.Scan(&item.ID, &item.Position); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrListItemExists
			// FK violation
			case "23503":
				return errorvalues.ErrListNotFound
			}
		}
		return errors.New("adding list item db error: " + err.Error())
	}
	return nil
}

// RemoveItemAndReindex deletes the item and renumbers the remainder to a
// dense zero-based sequence inside one transaction, so no reader observes a
// gap.
func (clr *CuratedListsRepository) RemoveItemAndReindex(ctx context.Context, listID, itemID uuid.UUID) error {
	tx, err := clr.conn.Begin(ctx)
	if err != nil {
		return errors.New("starting reindex tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx,
		`DELETE FROM curated_list_items WHERE id = $1 AND list_id = $2;`, itemID, listID)
	if err != nil {
		return errors.New("deleting list item error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrListItemNotFound
	}
	_, err = tx.Exec(ctx,
		`WITH ranked AS (
			SELECT id, ROW_NUMBER() OVER (ORDER BY position) - 1 AS new_position
			FROM curated_list_items WHERE list_id = $1
		)
		UPDATE curated_list_items AS c SET position = r.new_position
		FROM ranked AS r WHERE c.id = r.id AND c.position <> r.new_position;`,
		listID,
	)
	if err != nil {
		return errors.New("reindexing list items error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing reindex tx error: " + err.Error())
	}
	return nil
}
