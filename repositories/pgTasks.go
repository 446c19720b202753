package repositories

import (
	"context"
	"time"

	"task-server/db"
	"task-server/entities"

	"gorm.io/gorm"
)

type taskPgRepository struct {
	db db.Database
}

func NewTaskPgRepository(database db.Database) TaskRepository {
	return &taskPgRepository{db: database}
}

func (r *taskPgRepository) Create(ctx context.Context, task *entities.Task) error {
	err := r.db.GetDB().WithContext(ctx).Create(task).Error
	return translate(err, "", "", "create task")
}

func (r *taskPgRepository) GetByID(ctx context.Context, id string) (*entities.Task, error) {
	var task entities.Task
	err := r.db.GetDB().WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, translate(err, "Task not found", "", "get task")
	}
	return &task, nil
}

func (r *taskPgRepository) GetByCreator(ctx context.Context, creatorID string) ([]entities.Task, error) {
	var tasks []entities.Task
	err := r.db.GetDB().WithContext(ctx).Where("created_by = ?", creatorID).Find(&tasks).Error
	return tasks, translate(err, "", "", "list tasks")
}

func (r *taskPgRepository) GetByCreatorDueBetween(ctx context.Context, creatorID string, start, end time.Time) ([]entities.Task, error) {
	var tasks []entities.Task
	err := r.db.GetDB().WithContext(ctx).
		Where("created_by = ? AND due_date >= ? AND due_date <= ?", creatorID, start.UTC(), end.UTC()).
		Find(&tasks).Error
	return tasks, translate(err, "", "", "filter tasks")
}

// Update writes every mutable column of an existing task. Unlike Save it never
// falls back to an insert, so a task deleted in the meantime stays deleted.
func (r *taskPgRepository) Update(ctx context.Context, task *entities.Task) error {
	res := r.db.GetDB().WithContext(ctx).
		Model(task).
		Select("*").
		Omit("ID", "CreatedAt", "CreatedBy").
		Updates(task)
	if res.Error != nil {
		return translate(res.Error, "", "", "update task")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Task not found", "", "update task")
	}
	return nil
}

func (r *taskPgRepository) Delete(ctx context.Context, id string) error {
	res := r.db.GetDB().WithContext(ctx).Where("id = ?", id).Delete(&entities.Task{})
	if res.Error != nil {
		return translate(res.Error, "", "", "delete task")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Task not found", "", "delete task")
	}
	return nil
}
