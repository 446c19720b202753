package httpHandler

import (
	"net/http"

	"task-server/handlers"
	"task-server/usecases"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	useCase *usecases.TaskUseCase
}

func NewTaskHandler(useCase *usecases.TaskUseCase) *TaskHandler {
	return &TaskHandler{
		useCase: useCase,
	}
}

type CreateTaskRequest struct {
	Title      string   `json:"title"`
	Priority   string   `json:"priority"`
	DueDate    *dueDate `json:"dueDate"`
	Category   string   `json:"category"`
	Checklist  []string `json:"checklist"`
	AssignedTo string   `json:"assignedTo"`
}

// UpdateTaskRequest uses pointers so absent fields can be told apart from empty ones.
type UpdateTaskRequest struct {
	Title      *string   `json:"title"`
	Priority   *string   `json:"priority"`
	Status     *string   `json:"status"`
	DueDate    *dueDate  `json:"dueDate"`
	Category   *string   `json:"category"`
	Checklist  *[]string `json:"checklist"`
	AssignedTo *string   `json:"assignedTo"`
	Shared     *bool     `json:"shared"`
}

// CreateTask handles POST /api/tasks/create
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	task, err := h.useCase.CreateTask(c.Request.Context(), usecases.NewTask{
		Title:      req.Title,
		Priority:   req.Priority,
		DueDate:    req.DueDate.ptr(),
		Category:   req.Category,
		Checklist:  req.Checklist,
		AssignedTo: req.AssignedTo,
	}, handlers.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// GetMyTasks handles GET /api/tasks
func (h *TaskHandler) GetMyTasks(c *gin.Context) {
	tasks, err := h.useCase.ListByCreator(c.Request.Context(), handlers.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// FilterTasks handles GET /api/tasks/filter?filter=today|thisWeek|thisMonth
func (h *TaskHandler) FilterTasks(c *gin.Context) {
	tasks, err := h.useCase.FilterTasks(c.Request.Context(), handlers.UserID(c), c.Query("filter"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetTask handles GET /api/tasks/:taskId
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.useCase.GetTaskFor(c.Request.Context(), c.Param("taskId"), handlers.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/:taskId
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	task, err := h.useCase.UpdateTask(c.Request.Context(), c.Param("taskId"), handlers.UserID(c), usecases.TaskPatch{
		Title:      req.Title,
		Priority:   req.Priority,
		Status:     req.Status,
		DueDate:    req.DueDate.ptr(),
		Category:   req.Category,
		Checklist:  req.Checklist,
		AssignedTo: req.AssignedTo,
		Shared:     req.Shared,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    task,
	})
}

// DeleteTask handles DELETE /api/tasks/:taskId
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.useCase.DeleteTask(c.Request.Context(), c.Param("taskId"), handlers.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
