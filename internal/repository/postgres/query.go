package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/models"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// eq returns col = *v, or nil when the filter member is absent.
func eq[T any](col string, v *T) squirrel.Sqlizer {
	if v == nil {
		return nil
	}
	return squirrel.Eq{col: *v}
}

func cmp[T any](v *T, pred func(T) squirrel.Sqlizer) squirrel.Sqlizer {
	if v == nil {
		return nil
	}
	return pred(*v)
}

// ilikeAny matches %search% case-insensitively against any of cols.
func ilikeAny(search *string, cols ...string) squirrel.Sqlizer {
	if search == nil || *search == "" {
		return nil
	}
	pattern := "%" + *search + "%"
	or := make(squirrel.Or, 0, len(cols))
	for _, col := range cols {
		or = append(or, squirrel.ILike{col: pattern})
	}
	return or
}

// conj ANDs the non-nil predicates. It returns nil when none are left so
// that Where(nil) leaves the statement unfiltered.
func conj(preds ...squirrel.Sqlizer) squirrel.Sqlizer {
	var and squirrel.And
	for _, p := range preds {
		if p != nil {
			and = append(and, p)
		}
	}
	if len(and) == 0 {
		return nil
	}
	return and
}

// selectPage runs a COUNT(*) and a page query over the same FROM/JOIN and
// predicate. from must not carry columns.
func selectPage[T any](
	ctx context.Context,
	q Querier,
	from squirrel.SelectBuilder,
	cols []string,
	where squirrel.Sqlizer,
	page models.Page,
	orderBy ...string,
) ([]T, int, error) {
	countSQL, countArgs, err := from.Columns("COUNT(*)").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	items, err := selectAll[T](ctx, q, from.Columns(cols...).
		Where(where).
		OrderBy(orderBy...).
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// selectAll scans every row of b. It never returns a nil slice.
func selectAll[T any](ctx context.Context, q Querier, b squirrel.SelectBuilder) ([]T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	items := []T{}
	if err := pgxscan.Select(ctx, q, &items, sql, args...); err != nil {
		return nil, err
	}
	return items, nil
}

// selectOne scans exactly one row; no row surfaces as pgx.ErrNoRows.
func selectOne[T any](ctx context.Context, q Querier, b squirrel.SelectBuilder) (*T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	var item T
	if err := pgxscan.Get(ctx, q, &item, sql, args...); err != nil {
		return nil, err
	}
	return &item, nil
}

func insertID(ctx context.Context, q Querier, b squirrel.InsertBuilder) (int64, error) {
	sql, args, err := b.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}
	var id int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// updateByID applies set to one row and bumps updated_at.
func updateByID(ctx context.Context, q Querier, table string, id int64, set map[string]any) error {
	set["updated_at"] = squirrel.Expr("now()")
	sql, args, err := psql.Update(table).SetMap(set).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, q Querier, table string, id int64) error {
	sql, args, err := psql.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// setter collects the present members of a typed update into a SET map.
type setter map[string]any

func setIf[T any](s setter, col string, v *T) {
	if v != nil {
		s[col] = *v
	}
}

// fullName is the SQL for "first last" of the table aliased as alias.
func fullName(alias string) string {
	return alias + ".first_name || ' ' || " + alias + ".last_name"
}
