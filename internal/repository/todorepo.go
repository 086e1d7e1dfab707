package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chetan-code/todoapp/internal/models"
)

// ErrNotFound is returned when a todo id does not exist in the table.
var ErrNotFound = errors.New("todo not found")

type TodoStats struct {
	Total int `json:"total"`
	Done  int `json:"done"`
}

type TodoRepo struct {
	db *sql.DB
}

func NewTodoRepo(db *sql.DB) (*TodoRepo, error) {
	repo := &TodoRepo{db: db}

	err := repo.CreateTable()
	if err != nil {
		return nil, fmt.Errorf("could not initialize table: %w", err)
	}

	return repo, nil
}

func (r *TodoRepo) CreateTable() error {
	createTableQuery := `CREATE TABLE IF NOT EXISTS todos(
		id SERIAL PRIMARY KEY,
		title VARCHAR(100) NOT NULL DEFAULT '',
		completed BOOLEAN NOT NULL DEFAULT FALSE
	);`
	_, err := r.db.Exec(createTableQuery)
	return err
}

func (r *TodoRepo) FetchTodos(ctx context.Context) ([]models.Todo, error) {
	query := "SELECT id, title, completed FROM todos ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Error("todo_fetch_failed", "error", err)
		return nil, err
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		var t models.Todo
		err := rows.Scan(&t.ID, &t.Title, &t.Completed)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepo) AddTodo(ctx context.Context, title string) error {
	/*Placeholders ($1) instead of string formatting tell the driver to
	sanitize the input, which prevents SQL injection.*/
	addTodoQuery := "INSERT INTO todos (title) VALUES ($1)"
	_, err := r.db.ExecContext(ctx, addTodoQuery, title)
	return err
}

func (r *TodoRepo) FindTodo(ctx context.Context, id int) (models.Todo, error) {
	query := "SELECT id, title, completed FROM todos WHERE id = $1"
	var t models.Todo
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Title, &t.Completed)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Todo{}, ErrNotFound
	}
	return t, err
}

// ToggleTodo flips the completed flag in a single statement so concurrent
// toggles never read a stale flag.
func (r *TodoRepo) ToggleTodo(ctx context.Context, id int) error {
	query := "UPDATE todos SET completed = NOT completed WHERE id = $1"
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TodoRepo) DeleteTodo(ctx context.Context, id int) error {
	query := "DELETE FROM todos WHERE id = $1"
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TodoRepo) RemoveAllTodos(ctx context.Context) error {
	query := "DELETE FROM todos"
	_, err := r.db.ExecContext(ctx, query)
	if err != nil {
		slog.Error("todo_clear_failed", "error", err)
	}
	return err
}

func (r *TodoRepo) GetStats(ctx context.Context) (TodoStats, error) {
	query := "SELECT COUNT(*), COUNT(*) FILTER (WHERE completed) FROM todos"
	var stats TodoStats
	err := r.db.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Done)
	return stats, err
}
