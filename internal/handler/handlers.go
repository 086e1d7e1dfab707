package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/chetan-code/todoapp/internal/models"
	"github.com/chetan-code/todoapp/internal/repository"
	"github.com/chetan-code/todoapp/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// Store is what the handlers need from the storage layer. *repository.TodoRepo
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	FetchTodos(ctx context.Context) ([]models.Todo, error)
	AddTodo(ctx context.Context, title string) error
	ToggleTodo(ctx context.Context, id int) error
	DeleteTodo(ctx context.Context, id int) error
	RemoveAllTodos(ctx context.Context) error
	GetStats(ctx context.Context) (repository.TodoStats, error)
}

type TodoHandler struct {
	repo     Store
	renderer view.Renderer
	validate *validator.Validate
}

func NewTodoHandler(repo Store, renderer view.Renderer) *TodoHandler {
	return &TodoHandler{
		repo:     repo,
		renderer: renderer,
		validate: validator.New(),
	}
}

// Routes builds the full route table so main and the tests serve the exact
// same surface.
func (h *TodoHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", h.HomeHandler)
	r.Get("/todos", h.ListHandler)
	r.Post("/todos/create", h.CreateHandler)
	r.Get("/todos/update/{id}", h.ToggleHandler)
	r.Get("/todos/delete/{id}", h.DeleteHandler)
	r.Post("/todos/clear", h.ClearHandler)

	return r
}

func (h *TodoHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "Hello, World!")
}

func (h *TodoHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	todos, err := h.repo.FetchTodos(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch todos", http.StatusInternalServerError)
		return
	}
	stats, err := h.repo.GetStats(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch stats", http.StatusInternalServerError)
		return
	}

	err = h.renderer.List(w, view.ListData{Todos: todos, Stats: stats})
	if err != nil {
		slog.Error("todo_list_render_failed", "error", err)
	}
}

type createInput struct {
	Title string `validate:"required,max=100"`
}

func (h *TodoHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	input := createInput{Title: r.FormValue("title")}
	err := h.validate.Struct(input)
	if err != nil {
		slog.Error("invalid_title",
			"method", r.Method,
			"path", r.URL.Path,
			"ip", r.RemoteAddr)
		http.Error(w, "Title must be 1-100 characters", http.StatusBadRequest)
		return
	}

	err = h.repo.AddTodo(r.Context(), input.Title)
	if err != nil {
		http.Error(w, "Failed to create todo", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/todos", http.StatusSeeOther)
}

func (h *TodoHandler) ToggleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid todo id", http.StatusBadRequest)
		return
	}

	err = h.repo.ToggleTodo(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "No todo with id "+strconv.Itoa(id), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Error toggling todo", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/todos", http.StatusSeeOther)
}

func (h *TodoHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid todo id", http.StatusBadRequest)
		return
	}

	err = h.repo.DeleteTodo(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "No todo with id "+strconv.Itoa(id), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Error deleting todo", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/todos", http.StatusSeeOther)
}

func (h *TodoHandler) ClearHandler(w http.ResponseWriter, r *http.Request) {
	err := h.repo.RemoveAllTodos(r.Context())
	if err != nil {
		http.Error(w, "Failed to clear todos", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/todos", http.StatusSeeOther)
}
