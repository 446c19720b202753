package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"task-server/entities"
	"task-server/usecases"
	"task-server/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// taskEventMessage is pushed to subscribers after a task changes.
type taskEventMessage struct {
	Type usecases.TaskEvent `json:"type"`
	Task *entities.Task     `json:"task"`
}

// TaskFeed streams task changes to the creator and assignee of each task.
type TaskFeed struct {
	mgr *ws.Manager
}

func NewTaskFeed(mgr *ws.Manager) *TaskFeed {
	return &TaskFeed{mgr: mgr}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleTaskFeed upgrades to websocket and keeps the connection registered
// until the client goes away.
// GET /api/tasks/ws
func (f *TaskFeed) HandleTaskFeed(c *gin.Context) {
	userID := UserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	f.mgr.Register(userID, conn)
	log.Printf("task feed connected: user %s", userID)

	defer func() {
		f.mgr.Unregister(userID, conn)
		log.Printf("task feed disconnected: user %s", userID)
	}()

	// The feed is server-to-client; reading only surfaces close frames.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("task feed read error for %s: %v", userID, err)
			}
			return
		}
	}
}

// TaskChanged implements usecases.TaskNotifier. The creator, the assignee and
// a just-removed assignee all hear about the change. Delivery happens off the
// request goroutine and failures are only logged.
func (f *TaskFeed) TaskChanged(change usecases.TaskChange) {
	recipients := change.Recipients()

	payload, err := json.Marshal(taskEventMessage{Type: change.Event, Task: change.Task})
	if err != nil {
		log.Printf("encode %s event for task %s: %v", change.Event, change.Task.ID, err)
		return
	}

	go func() {
		for _, userID := range recipients {
			if !f.mgr.IsConnected(userID) {
				continue
			}
			if err := f.mgr.SendToUser(userID, payload); err != nil {
				log.Printf("send %s event to user %s: %v", change.Event, userID, err)
			}
		}
	}()
}
