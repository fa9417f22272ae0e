package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/lalith-99/lawdesk/internal/models"
)

var taskColumns = []string{
	"t.id", "t.title", "t.description", "t.matter_id", "t.assigned_to", "t.created_by",
	"t.priority", "t.status", "t.due_date", "t.reminder_date", "t.completed_at",
	"t.created_at", "t.updated_at",
	"m.title AS matter_title",
	fullName("c") + " AS client_name",
	fullName("a") + " AS assigned_to_name",
	fullName("cb") + " AS created_by_name",
}

// priorityOrder sorts urgent first and low last.
const priorityOrder = `CASE t.priority
	WHEN 'urgent' THEN 1
	WHEN 'high' THEN 2
	WHEN 'medium' THEN 3
	WHEN 'low' THEN 4
	ELSE 5 END`

var taskOrder = []string{priorityOrder, "t.due_date ASC NULLS LAST", "t.created_at DESC", "t.id DESC"}

type TaskStore struct {
	db DB
}

func NewTaskStore(db DB) *TaskStore {
	return &TaskStore{db: db}
}

func taskFrom() squirrel.SelectBuilder {
	return psql.Select().
		From("tasks t").
		LeftJoin("matters m ON t.matter_id = m.id").
		LeftJoin("clients c ON m.client_id = c.id").
		LeftJoin("users a ON t.assigned_to = a.id").
		LeftJoin("users cb ON t.created_by = cb.id")
}

func (s *TaskStore) List(ctx context.Context, f models.TaskFilter, p models.Page) ([]models.Task, int, error) {
	where := conj(
		eq("t.status", f.Status),
		eq("t.priority", f.Priority),
		eq("t.assigned_to", f.AssignedTo),
		eq("t.matter_id", f.MatterID),
	)
	items, total, err := selectPage[models.Task](ctx, QuerierFromCtx(ctx, s.db),
		taskFrom(), taskColumns, where, p, taskOrder...)
	if err != nil {
		return nil, 0, mapError("list tasks", err)
	}
	return items, total, nil
}

func (s *TaskStore) Get(ctx context.Context, id int64) (*models.Task, error) {
	t, err := selectOne[models.Task](ctx, QuerierFromCtx(ctx, s.db),
		taskFrom().Columns(taskColumns...).Where(squirrel.Eq{"t.id": id}))
	if err != nil {
		return nil, mapError("get task", err)
	}
	return t, nil
}

func (s *TaskStore) Create(ctx context.Context, in models.TaskInput, createdBy int64) (*models.Task, error) {
	values := map[string]any{
		"title":         in.Title,
		"description":   in.Description,
		"matter_id":     in.MatterID,
		"assigned_to":   in.AssignedTo,
		"created_by":    createdBy,
		"priority":      in.Priority,
		"status":        in.Status,
		"due_date":      in.DueDate,
		"reminder_date": in.ReminderDate,
	}
	if in.Status == models.TaskStatusCompleted {
		values["completed_at"] = squirrel.Expr("now()")
	}
	id, err := insertID(ctx, QuerierFromCtx(ctx, s.db), psql.Insert("tasks").SetMap(values))
	if err != nil {
		return nil, mapError("insert task", err)
	}
	return s.Get(ctx, id)
}

// Update stamps completed_at when the status moves to completed and clears
// it when the status moves anywhere else.
func (s *TaskStore) Update(ctx context.Context, id int64, u models.TaskUpdate) (*models.Task, error) {
	set := setter{}
	setIf(set, "title", u.Title)
	setIf(set, "description", u.Description)
	setIf(set, "assigned_to", u.AssignedTo)
	setIf(set, "priority", u.Priority)
	setIf(set, "status", u.Status)
	setIf(set, "due_date", u.DueDate)
	setIf(set, "reminder_date", u.ReminderDate)
	if u.Status != nil {
		if *u.Status == models.TaskStatusCompleted {
			set["completed_at"] = squirrel.Expr("COALESCE(completed_at, now())")
		} else {
			set["completed_at"] = nil
		}
	}

	if err := updateByID(ctx, QuerierFromCtx(ctx, s.db), "tasks", id, set); err != nil {
		return nil, mapError("update task", err)
	}
	return s.Get(ctx, id)
}

func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, QuerierFromCtx(ctx, s.db), "tasks", id); err != nil {
		return mapError("delete task", err)
	}
	return nil
}

func (s *TaskStore) Today(ctx context.Context, userID int64, today models.Date) ([]models.Task, error) {
	where := squirrel.And{
		squirrel.Or{squirrel.Eq{"t.assigned_to": userID}, squirrel.Eq{"t.created_by": userID}},
		squirrel.NotEq{"t.status": []string{models.TaskStatusCompleted, models.TaskStatusCancelled}},
		squirrel.Or{squirrel.LtOrEq{"t.due_date": today}, squirrel.Eq{"t.due_date": nil}},
	}
	items, err := selectAll[models.Task](ctx, QuerierFromCtx(ctx, s.db),
		taskFrom().Columns(taskColumns...).Where(where).OrderBy(taskOrder...))
	if err != nil {
		return nil, mapError("today tasks", err)
	}
	return items, nil
}
