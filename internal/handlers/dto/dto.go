package dto

import "kanban/internal/models/task"

// TaskRequest is the body of create and update calls. ID is accepted so
// clients can send a task back unchanged, but it is never used.
type TaskRequest struct {
	ID          *int64  `json:"id,omitempty"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ColumnName  *string `json:"columnName"`
}

func (r TaskRequest) ToTask() *task.Task {
	return &task.Task{
		Title:       r.Title,
		Description: r.Description,
		ColumnName:  r.ColumnName,
	}
}

type TaskResponse struct {
	ID          int64   `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ColumnName  *string `json:"columnName"`
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		ColumnName:  t.ColumnName,
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}
