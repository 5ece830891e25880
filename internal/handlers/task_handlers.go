package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"kanban/internal/handlers/dto"
	"kanban/internal/logger"
	"kanban/internal/models/task"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService Service
}

func NewTaskHandler(taskService Service) *TaskHandler {
	return &TaskHandler{
		TaskService: taskService,
	}
}

func (s *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	tasks, err := s.TaskService.GetAllTasks(r.Context())
	if err != nil {
		logger.Error("HTTP: service error", err,
			zap.String("operation", "list_tasks"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: tasks listed",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTaskList(tasks))
}

func (s *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	request, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	created, err := s.TaskService.CreateTask(r.Context(), request.ToTask())
	if err != nil {
		logger.Error("HTTP: service error", err,
			zap.String("operation", "create_task"),
			zap.String("client_ip", r.RemoteAddr),
			zap.Duration("ms", time.Since(start)))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: task created",
		zap.Int64("task_id", created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(created))
}

// UpdateTask overwrites title and columnName only. The description in the
// body is ignored.
func (s *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	request, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	updated, err := s.TaskService.UpdateTask(r.Context(), id,
		task.WithTitle(request.Title),
		task.WithColumnName(request.ColumnName),
	)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}

		logger.Error("HTTP: service error", err,
			zap.String("operation", "update_task"),
			zap.Int64("task_id", id),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: task updated",
		zap.Int64("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(updated))
}

func (s *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := s.TaskService.DeleteTask(r.Context(), id); err != nil {
		if handleBusinessError(w, err) {
			return
		}

		logger.Error("HTTP: service error", err,
			zap.String("operation", "delete_task"),
			zap.Int64("task_id", id),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: task deleted",
		zap.Int64("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	responseEmpty(w, http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		logger.Warn("HTTP: invalid id",
			zap.String("id", idParam),
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "invalid task id: "+idParam)
		return 0, false
	}
	return id, true
}

// decodeTaskRequest reads the JSON body. An unreadable body is a server
// error, like any other failure that is not a missing task.
func decodeTaskRequest(w http.ResponseWriter, r *http.Request) (dto.TaskRequest, bool) {
	var request dto.TaskRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Error("HTTP: failed to read JSON", err,
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, "invalid request body: "+err.Error())
		return request, false
	}
	return request, true
}
