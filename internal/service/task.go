package service

import (
	"context"
	"fmt"

	"github.com/lalith-99/lawdesk/internal/models"
	"github.com/lalith-99/lawdesk/internal/repository"
)

type TaskService struct {
	tasks repository.TaskRepository
	rec   *Recorder
}

func NewTaskService(tasks repository.TaskRepository, rec *Recorder) *TaskService {
	return &TaskService{tasks: tasks, rec: rec}
}

func (s *TaskService) List(ctx context.Context, f models.TaskFilter, p models.Page) (models.List[models.Task], error) {
	items, total, err := s.tasks.List(ctx, f, p)
	if err != nil {
		return models.List[models.Task]{}, fmt.Errorf("list tasks: %w", err)
	}
	return page(items, total, p), nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (*models.Task, error) {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, notFound("get task", "Task", err)
	}
	return t, nil
}

// Today lists the actor's open work: tasks assigned to or created by them
// that are due today, overdue, or undated.
func (s *TaskService) Today(ctx context.Context, actor models.Actor) ([]models.Task, error) {
	items, err := s.tasks.Today(ctx, actor.ID, models.Today())
	if err != nil {
		return nil, fmt.Errorf("today tasks: %w", err)
	}
	return items, nil
}

func (s *TaskService) Create(ctx context.Context, actor models.Actor, in models.TaskInput) (*models.Task, error) {
	in.ApplyDefaults()
	t, err := s.tasks.Create(ctx, in, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionCreate,
		EntityType:  models.EntityTask,
		EntityID:    t.ID,
		Description: "Created task: " + t.Title,
	})
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, actor models.Actor, id int64, u models.TaskUpdate) (*models.Task, error) {
	if u.IsEmpty() {
		return nil, errNoFields
	}
	t, err := s.tasks.Update(ctx, id, u)
	if err != nil {
		return nil, notFound("update task", "Task", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionUpdate,
		EntityType:  models.EntityTask,
		EntityID:    id,
		Description: "Updated task: " + t.Title,
	})
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		return notFound("delete task", "Task", err)
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return notFound("delete task", "Task", err)
	}
	s.rec.Record(ctx, actor, Event{
		Action:      models.ActionDelete,
		EntityType:  models.EntityTask,
		EntityID:    id,
		Description: "Deleted task: " + t.Title,
	})
	return nil
}
