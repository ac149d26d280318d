package events

import (
	"context"

	"github.com/charmbracelet/log"
)

// LogHandler records every lifecycle event in the application log.
type LogHandler struct {
	logger *log.Logger
}

func NewLogHandler(logger *log.Logger) *LogHandler {
	return &LogHandler{logger: logger}
}

func (h *LogHandler) Handle(_ context.Context, e Event) error {
	switch e.Kind {
	case KindCreated:
		h.logger.Info("task created", "task_id", e.TaskID, "title", e.Title, "user_id", e.UserID, "priority", e.Priority)
	case KindCompleted:
		h.logger.Info("task completed", "task_id", e.TaskID, "title", e.Title, "completed_at", e.At)
	case KindPriorityChanged:
		h.logger.Info("task priority changed", "task_id", e.TaskID, "title", e.Title,
			"old_priority", e.PreviousPriority, "new_priority", e.Priority)
	case KindDeleted:
		h.logger.Info("task deleted", "task_id", e.TaskID, "title", e.Title, "deleted_at", e.At)
	default:
		h.logger.Warn("unknown task event", "kind", e.Kind, "task_id", e.TaskID)
	}
	return nil
}
