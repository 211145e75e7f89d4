package handlers

import (
	"context"
	"net/http"

	"personalsite/models"
	"personalsite/utils"

	"go.uber.org/zap"
)

type TaskStore interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	GetTask(ctx context.Context, id int64) (models.Task, error)
	CreateTask(ctx context.Context, content string) (models.Task, error)
	UpdateTask(ctx context.Context, id int64, content string) (models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// TaskHandler serves the to-do list.
type TaskHandler struct {
	Store TaskStore
	View  *Renderer
	Log   *zap.SugaredLogger
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.Log)

	tasks, err := h.Store.ListTasks(r.Context())
	if err != nil {
		writeError(w, log, err, "There was an issue loading your tasks.")
		return
	}
	render(w, log, h.View, "todo", models.PageData{Tasks: tasks})
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.Log)

	content, err := utils.ValidateTaskInput(r.FormValue("content"))
	if err != nil {
		writeError(w, log, err, "There was an issue adding your task.")
		return
	}

	task, err := h.Store.CreateTask(r.Context(), content)
	if err != nil {
		writeError(w, log, err, "There was an issue adding your task.")
		return
	}
	log.Debugw("task created", "id", task.ID)
	redirect(w, r, "/tasks")
}

// Edit shows the update form for one task.
func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.Log)

	id, err := parseID(r, "task")
	if err != nil {
		writeError(w, log, err, "There was an issue loading that task.")
		return
	}
	task, err := h.Store.GetTask(r.Context(), id)
	if err != nil {
		writeError(w, log, err, "There was an issue loading that task.")
		return
	}
	render(w, log, h.View, "update_todo", models.PageData{Task: &task})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.Log)

	id, err := parseID(r, "task")
	if err != nil {
		writeError(w, log, err, "There was an issue updating your task.")
		return
	}
	content, err := utils.ValidateTaskInput(r.FormValue("content"))
	if err != nil {
		writeError(w, log, err, "There was an issue updating your task.")
		return
	}
	if _, err := h.Store.UpdateTask(r.Context(), id, content); err != nil {
		writeError(w, log, err, "There was an issue updating your task.")
		return
	}
	redirect(w, r, "/tasks")
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context(), h.Log)

	id, err := parseID(r, "task")
	if err != nil {
		writeError(w, log, err, "There was a problem deleting that task.")
		return
	}
	if err := h.Store.DeleteTask(r.Context(), id); err != nil {
		writeError(w, log, err, "There was a problem deleting that task.")
		return
	}
	redirect(w, r, "/tasks")
}
