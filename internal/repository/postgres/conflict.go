package postgres

import (
	"context"
	"encoding/json"

	"github.com/Masterminds/squirrel"

	"github.com/lalith-99/lawdesk/internal/models"
)

// conflictSearch unions the three conflict sources into one ConflictMatch
// shape. $1 is the ILIKE pattern.
const conflictSearch = `
	SELECT id, 'client' AS entity_type,
	       first_name || ' ' || last_name AS name,
	       first_name, last_name, email, company_name,
	       NULL::text AS relationship_type
	FROM clients
	WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR company_name ILIKE $1
	   OR first_name || ' ' || last_name ILIKE $1
	UNION ALL
	SELECT id, 'adverse_party', name, NULL, NULL, email, NULL, NULL
	FROM adverse_parties
	WHERE name ILIKE $1 OR email ILIKE $1
	UNION ALL
	SELECT id, 'contact', name, NULL, NULL, email, NULL, relationship_type
	FROM contacts
	WHERE name ILIKE $1 OR email ILIKE $1
	ORDER BY entity_type, id`

var conflictCheckColumns = []string{
	"cc.id", "cc.search_name", "cc.checked_by", "cc.has_conflict", "cc.results", "cc.notes",
	"cc.checked_at",
	fullName("u") + " AS checked_by_name",
}

type ConflictStore struct {
	db DB
}

func NewConflictStore(db DB) *ConflictStore {
	return &ConflictStore{db: db}
}

func (s *ConflictStore) Search(ctx context.Context, name string) ([]models.ConflictMatch, error) {
	matches := []models.ConflictMatch{}
	rows, err := QuerierFromCtx(ctx, s.db).Query(ctx, conflictSearch, "%"+name+"%")
	if err != nil {
		return nil, mapError("conflict search", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.ConflictMatch
		if err := rows.Scan(&m.ID, &m.EntityType, &m.Name, &m.FirstName, &m.LastName,
			&m.Email, &m.CompanyName, &m.RelationshipType); err != nil {
			return nil, mapError("scan conflict match", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("conflict search rows", err)
	}
	return matches, nil
}

func (s *ConflictStore) Record(ctx context.Context, in models.ConflictLogInput, checkedBy int64) (*models.ConflictCheck, error) {
	results := in.Results
	if len(results) == 0 {
		results = json.RawMessage("[]")
	}

	q := QuerierFromCtx(ctx, s.db)
	id, err := insertID(ctx, q, psql.Insert("conflict_checks").SetMap(map[string]any{
		"search_name":  in.SearchName,
		"checked_by":   checkedBy,
		"has_conflict": in.HasConflict,
		"results":      results,
		"notes":        in.Notes,
	}))
	if err != nil {
		return nil, mapError("insert conflict check", err)
	}

	c, err := selectOne[models.ConflictCheck](ctx, q, psql.Select(conflictCheckColumns...).
		From("conflict_checks cc").
		LeftJoin("users u ON cc.checked_by = u.id").
		Where(squirrel.Eq{"cc.id": id}))
	if err != nil {
		return nil, mapError("get conflict check", err)
	}
	return c, nil
}

func (s *ConflictStore) List(ctx context.Context, p models.Page) ([]models.ConflictCheck, int, error) {
	items, total, err := selectPage[models.ConflictCheck](ctx, QuerierFromCtx(ctx, s.db),
		psql.Select().From("conflict_checks cc").LeftJoin("users u ON cc.checked_by = u.id"),
		conflictCheckColumns, nil, p, "cc.checked_at DESC", "cc.id DESC")
	if err != nil {
		return nil, 0, mapError("list conflict checks", err)
	}
	return items, total, nil
}
