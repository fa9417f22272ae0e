package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/models"
)

// crudOps drives one resource's update and delete through its service.
// A non-nil patch sets a single field, a nil patch sends an empty update.
type crudOps struct {
	update func(ctx context.Context, id int64, patch *string) error
	delete func(ctx context.Context, id int64) error
}

// titleStore backs the repository mocks: ids present in the map exist,
// everything else is missing.
type titleStore map[int64]string

func (s titleStore) lookup(op string, id int64) (string, error) {
	title, ok := s[id]
	if !ok {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return title, nil
}

func (s titleStore) remove(op string, id int64) error {
	if _, err := s.lookup(op, id); err != nil {
		return err
	}
	delete(s, id)
	return nil
}

func matterOps(store titleStore, rec *Recorder) crudOps {
	svc := NewMatterService(&matterRepoMock{
		GetFunc: func(_ context.Context, id int64) (*models.Matter, error) {
			title, err := store.lookup("get matter", id)
			if err != nil {
				return nil, err
			}
			return &models.Matter{ID: id, Title: title}, nil
		},
		UpdateFunc: func(_ context.Context, id int64, u models.MatterUpdate) (*models.Matter, error) {
			if _, err := store.lookup("update matter", id); err != nil {
				return nil, err
			}
			store[id] = *u.Title
			return &models.Matter{ID: id, Title: *u.Title}, nil
		},
		DeleteFunc: func(_ context.Context, id int64) error { return store.remove("delete matter", id) },
	}, rec)

	return crudOps{
		update: func(ctx context.Context, id int64, patch *string) error {
			_, err := svc.Update(ctx, attorney, id, models.MatterUpdate{Title: patch})
			return err
		},
		delete: func(ctx context.Context, id int64) error { return svc.Delete(ctx, attorney, id) },
	}
}

func taskOps(store titleStore, rec *Recorder) crudOps {
	svc := NewTaskService(&taskRepoMock{
		GetFunc: func(_ context.Context, id int64) (*models.Task, error) {
			title, err := store.lookup("get task", id)
			if err != nil {
				return nil, err
			}
			return &models.Task{ID: id, Title: title}, nil
		},
		UpdateFunc: func(_ context.Context, id int64, u models.TaskUpdate) (*models.Task, error) {
			if _, err := store.lookup("update task", id); err != nil {
				return nil, err
			}
			store[id] = *u.Title
			return &models.Task{ID: id, Title: *u.Title}, nil
		},
		DeleteFunc: func(_ context.Context, id int64) error { return store.remove("delete task", id) },
	}, rec)

	return crudOps{
		update: func(ctx context.Context, id int64, patch *string) error {
			_, err := svc.Update(ctx, attorney, id, models.TaskUpdate{Title: patch})
			return err
		},
		delete: func(ctx context.Context, id int64) error { return svc.Delete(ctx, attorney, id) },
	}
}

func TestUpdateDeleteRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		entity     string
		title      string
		entityType string
		build      func(titleStore, *Recorder) crudOps
	}{
		{name: "matter", entity: "Matter", title: "Smith v. Jones", entityType: models.EntityMatter, build: matterOps},
		{name: "task", entity: "Task", title: "File motion", entityType: models.EntityTask, build: taskOps},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := titleStore{5: tt.title}
			activities := &activityRepoMock{}
			ops := tt.build(store, NewRecorder(activities, &metricsMock{}, zap.NewNop()))
			renamed := tt.title + " (amended)"

			err := ops.update(ctx, 5, nil)
			require.ErrorIs(t, err, apperr.ErrValidation)
			assert.Equal(t, "No valid fields to update", err.Error())
			assert.Equal(t, tt.title, store[5], "empty update touches nothing")

			err = ops.update(ctx, 99, &renamed)
			require.ErrorIs(t, err, apperr.ErrNotFound)
			assert.Equal(t, tt.entity+" not found", err.Error())

			err = ops.delete(ctx, 99)
			require.ErrorIs(t, err, apperr.ErrNotFound)
			assert.Equal(t, tt.entity+" not found", err.Error())
			assert.Empty(t, activities.recorded())

			require.NoError(t, ops.update(ctx, 5, &renamed))
			require.NoError(t, ops.delete(ctx, 5))
			assert.NotContains(t, store, int64(5))

			recorded := activities.recorded()
			require.Len(t, recorded, 2)
			assert.Equal(t, models.ActionUpdate, recorded[0].Action)
			assert.Equal(t, models.ActionDelete, recorded[1].Action)
			assert.Equal(t, tt.entityType, recorded[1].EntityType)
			require.NotNil(t, recorded[1].EntityID)
			assert.Equal(t, int64(5), *recorded[1].EntityID)
			assert.Equal(t, "Deleted "+tt.name+": "+renamed, recorded[1].Description)

			err = ops.delete(ctx, 5)
			require.ErrorIs(t, err, apperr.ErrNotFound)
		})
	}
}
