package view

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/chetan-code/todoapp/internal/models"
	"github.com/chetan-code/todoapp/internal/repository"
)

//go:embed templates/*.html
var templateFS embed.FS

// ListData is everything the list view needs for one render.
type ListData struct {
	Todos []models.Todo
	Stats repository.TodoStats
}

// Renderer writes the todo list to the response. Handlers depend on this
// interface so the same routes can serve HTML or JSON.
type Renderer interface {
	List(w http.ResponseWriter, data ListData) error
}

type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (h *HTMLRenderer) List(w http.ResponseWriter, data ListData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return h.tmpl.ExecuteTemplate(w, "todos.html", data)
}

type JSONRenderer struct{}

func (JSONRenderer) List(w http.ResponseWriter, data ListData) error {
	// an empty list is [] on the wire, not null
	if data.Todos == nil {
		data.Todos = []models.Todo{}
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(struct {
		Todos []models.Todo        `json:"todos"`
		Stats repository.TodoStats `json:"stats"`
	}{
		Todos: data.Todos,
		Stats: data.Stats,
	})
}
