package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority accepts any case variant of low, medium or high and returns
// the lowercase form stored on the task.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, true
	}
	return "", false
}

type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusToDo       Status = "to-do"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusBacklog, StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task is a unit of work. CreatedBy and AssignedTo are user ids, not embedded
// users; resolve them through the user repository when needed.
type Task struct {
	ID         string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title      string     `gorm:"not null" json:"title"`
	Priority   Priority   `gorm:"type:varchar(16);not null" json:"priority"`
	Status     Status     `gorm:"type:varchar(16);not null" json:"status"`
	DueDate    *time.Time `gorm:"index" json:"dueDate,omitempty"`
	Category   string     `json:"category,omitempty"`
	Checklist  []string   `gorm:"serializer:json" json:"checklist"`
	AssignedTo *string    `gorm:"type:varchar(36);index" json:"assignedTo,omitempty"`
	CreatedBy  string     `gorm:"type:varchar(36);index;not null" json:"createdBy"`
	Shared     bool       `json:"shared"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = StatusBacklog
	}
	if t.Checklist == nil {
		t.Checklist = []string{}
	}
	return
}

// IsAssignedTo reports whether userID is the task's assignee.
func (t *Task) IsAssignedTo(userID string) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}
