package repositories

import (
	"context"
	"time"

	"task-server/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetAll(ctx context.Context) ([]entities.User, error)
	Update(ctx context.Context, user *entities.User) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id string) (*entities.Task, error)
	GetByCreator(ctx context.Context, creatorID string) ([]entities.Task, error)
	// GetByCreatorDueBetween returns tasks whose due date lies in [start, end].
	GetByCreatorDueBetween(ctx context.Context, creatorID string, start, end time.Time) ([]entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id string) error
}
