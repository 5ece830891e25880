package handlers

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *TaskHandler) {
	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", h.GetAllTasks)  // GET /api/tasks
		r.Post("/", h.CreateTask) // POST /api/tasks

		r.Put("/{id}", h.UpdateTask)    // PUT /api/tasks/{id}
		r.Delete("/{id}", h.DeleteTask) // DELETE /api/tasks/{id}
	})
}
