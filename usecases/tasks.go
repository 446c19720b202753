package usecases

import (
	"context"
	"strings"
	"time"

	"task-server/apperrors"
	"task-server/entities"
	"task-server/repositories"
)

type TaskEvent string

const (
	TaskCreated TaskEvent = "task.created"
	TaskUpdated TaskEvent = "task.updated"
	TaskDeleted TaskEvent = "task.deleted"
)

// TaskChange describes a persisted change to a task. FormerAssignee is set
// when an update moved the task away from a previous assignee.
type TaskChange struct {
	Event          TaskEvent
	Task           *entities.Task
	FormerAssignee string
}

// Recipients lists the users who could read the task before or after the
// change, each once.
func (c TaskChange) Recipients() []string {
	out := []string{c.Task.CreatedBy}
	add := func(id string) {
		if id == "" {
			return
		}
		for _, seen := range out {
			if seen == id {
				return
			}
		}
		out = append(out, id)
	}
	if c.Task.AssignedTo != nil {
		add(*c.Task.AssignedTo)
	}
	add(c.FormerAssignee)
	return out
}

// TaskNotifier is told about every task change after it has been persisted.
// Implementations must not block.
type TaskNotifier interface {
	TaskChanged(change TaskChange)
}

type TaskUseCase struct {
	TaskRepo repositories.TaskRepository
	UserRepo repositories.UserRepository
	Notifier TaskNotifier
	Now      func() time.Time
}

func NewTaskUseCase(taskRepo repositories.TaskRepository, userRepo repositories.UserRepository, notifier TaskNotifier) *TaskUseCase {
	return &TaskUseCase{
		TaskRepo: taskRepo,
		UserRepo: userRepo,
		Notifier: notifier,
		Now:      time.Now,
	}
}

// NewTask holds the fields a caller may set when creating a task.
type NewTask struct {
	Title      string
	Priority   string
	DueDate    *time.Time
	Category   string
	Checklist  []string
	AssignedTo string
}

// TaskPatch holds an update. A nil field is left untouched; a non-nil field is
// applied even if it is empty. An empty AssignedTo clears the assignee.
type TaskPatch struct {
	Title      *string
	Priority   *string
	Status     *string
	DueDate    *time.Time
	Category   *string
	Checklist  *[]string
	AssignedTo *string
	Shared     *bool
}

// CreateTask validates in and stores it as a task owned by creatorID.
func (uc *TaskUseCase) CreateTask(ctx context.Context, in NewTask, creatorID string) (*entities.Task, error) {
	if creatorID == "" {
		return nil, apperrors.Unauthorized("Not authorized")
	}
	if strings.TrimSpace(in.Title) == "" || in.Priority == "" {
		return nil, apperrors.InvalidArgument("Title and Priority are required")
	}
	priority, ok := entities.ParsePriority(in.Priority)
	if !ok {
		return nil, apperrors.InvalidArgument("Invalid priority value")
	}

	task := &entities.Task{
		Title:     in.Title,
		Priority:  priority,
		DueDate:   utc(in.DueDate),
		Category:  in.Category,
		Checklist: in.Checklist,
		CreatedBy: creatorID,
	}
	if in.AssignedTo != "" {
		if err := uc.checkAssignee(ctx, in.AssignedTo); err != nil {
			return nil, err
		}
		assignee := in.AssignedTo
		task.AssignedTo = &assignee
	}

	if err := uc.TaskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	uc.notify(TaskChange{Event: TaskCreated, Task: task})
	return task, nil
}

// GetTask returns a task by id regardless of who asks.
func (uc *TaskUseCase) GetTask(ctx context.Context, taskID string) (*entities.Task, error) {
	if taskID == "" {
		return nil, apperrors.InvalidArgument("task id is required")
	}
	return uc.TaskRepo.GetByID(ctx, taskID)
}

// GetTaskFor returns a task the acting user may read.
func (uc *TaskUseCase) GetTaskFor(ctx context.Context, taskID, actingUserID string) (*entities.Task, error) {
	task, err := uc.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !CanRead(task, actingUserID) {
		return nil, apperrors.Forbidden("Not allowed to view this task")
	}
	return task, nil
}

// UpdateTask applies patch to a task created by actingUserID.
func (uc *TaskUseCase) UpdateTask(ctx context.Context, taskID, actingUserID string, patch TaskPatch) (*entities.Task, error) {
	task, err := uc.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !CanMutate(task, actingUserID) {
		return nil, apperrors.Forbidden("Not allowed to modify this task")
	}
	var formerAssignee string
	if task.AssignedTo != nil {
		formerAssignee = *task.AssignedTo
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, apperrors.InvalidArgument("Title cannot be empty")
		}
		task.Title = *patch.Title
	}
	if patch.Priority != nil {
		priority, ok := entities.ParsePriority(*patch.Priority)
		if !ok {
			return nil, apperrors.InvalidArgument("Invalid priority value")
		}
		task.Priority = priority
	}
	if patch.Status != nil {
		status := entities.Status(*patch.Status)
		if !status.Valid() {
			return nil, apperrors.InvalidArgument("Invalid status value")
		}
		task.Status = status
	}
	if patch.DueDate != nil {
		task.DueDate = utc(patch.DueDate)
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	if patch.Checklist != nil {
		task.Checklist = append([]string{}, (*patch.Checklist)...)
	}
	if patch.AssignedTo != nil {
		if *patch.AssignedTo == "" {
			task.AssignedTo = nil
		} else {
			if err := uc.checkAssignee(ctx, *patch.AssignedTo); err != nil {
				return nil, err
			}
			assignee := *patch.AssignedTo
			task.AssignedTo = &assignee
		}
	}
	if patch.Shared != nil {
		task.Shared = *patch.Shared
	}

	if err := uc.TaskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	change := TaskChange{Event: TaskUpdated, Task: task}
	if !task.IsAssignedTo(formerAssignee) {
		change.FormerAssignee = formerAssignee
	}
	uc.notify(change)
	return task, nil
}

// DeleteTask permanently removes a task created by actingUserID.
func (uc *TaskUseCase) DeleteTask(ctx context.Context, taskID, actingUserID string) error {
	task, err := uc.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !CanMutate(task, actingUserID) {
		return apperrors.Forbidden("Not allowed to delete this task")
	}
	if err := uc.TaskRepo.Delete(ctx, taskID); err != nil {
		return err
	}
	uc.notify(TaskChange{Event: TaskDeleted, Task: task})
	return nil
}

// ListByCreator returns every task created by creatorID, in no particular order.
func (uc *TaskUseCase) ListByCreator(ctx context.Context, creatorID string) ([]entities.Task, error) {
	tasks, err := uc.TaskRepo.GetByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	return nonNil(tasks), nil
}

// FilterTasks returns the creator's tasks due within the named window.
func (uc *TaskUseCase) FilterTasks(ctx context.Context, creatorID, filter string) ([]entities.Task, error) {
	r, err := ComputeRange(filter, uc.Now())
	if err != nil {
		return nil, err
	}
	return uc.Apply(ctx, creatorID, r)
}

// Apply returns the creator's tasks whose due date falls in r, ends included.
func (uc *TaskUseCase) Apply(ctx context.Context, creatorID string, r DateRange) ([]entities.Task, error) {
	tasks, err := uc.TaskRepo.GetByCreatorDueBetween(ctx, creatorID, r.Start, r.End)
	if err != nil {
		return nil, err
	}
	return nonNil(tasks), nil
}

func (uc *TaskUseCase) checkAssignee(ctx context.Context, userID string) error {
	if _, err := uc.UserRepo.GetByID(ctx, userID); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return apperrors.InvalidArgument("Assigned user does not exist")
		}
		return err
	}
	return nil
}

func (uc *TaskUseCase) notify(change TaskChange) {
	if uc.Notifier != nil {
		uc.Notifier.TaskChanged(change)
	}
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func nonNil(tasks []entities.Task) []entities.Task {
	if tasks == nil {
		return []entities.Task{}
	}
	return tasks
}
