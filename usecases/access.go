package usecases

import "task-server/entities"

// CanMutate reports whether userID may update or delete task. Only the creator may.
func CanMutate(task *entities.Task, userID string) bool {
	return userID != "" && task.CreatedBy == userID
}

// CanRead reports whether userID may read task: its creator or its assignee.
func CanRead(task *entities.Task, userID string) bool {
	return CanMutate(task, userID) || (userID != "" && task.IsAssignedTo(userID))
}
