package usecases

import (
	"context"
	"sync"
	"testing"

	"task-server/auth"
	"task-server/db/dbtest"
	"task-server/entities"
	"task-server/repositories"

	"golang.org/x/crypto/bcrypt"
)

type recordedEvent struct {
	event          TaskEvent
	taskID         string
	formerAssignee string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) TaskChanged(change TaskChange) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{
		event:          change.Event,
		taskID:         change.Task.ID,
		formerAssignee: change.FormerAssignee,
	})
}

type fixture struct {
	users    *UserUseCase
	tasks    *TaskUseCase
	userRepo repositories.UserRepository
	taskRepo repositories.TaskRepository
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := dbtest.New(t)
	userRepo := repositories.NewUserPgRepository(database)
	taskRepo := repositories.NewTaskPgRepository(database)
	notifier := &recordingNotifier{}
	return &fixture{
		users:    NewUserUseCase(userRepo, auth.NewCredentials(bcrypt.MinCost)),
		tasks:    NewTaskUseCase(taskRepo, userRepo, notifier),
		userRepo: userRepo,
		taskRepo: taskRepo,
		notifier: notifier,
	}
}

func (f *fixture) register(t *testing.T, name, email, password string) *entities.User {
	t.Helper()
	user, err := f.users.Register(context.Background(), name, email, password)
	if err != nil {
		t.Fatalf("Register %s: %v", email, err)
	}
	return user
}
