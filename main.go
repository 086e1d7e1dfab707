package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/chetan-code/todoapp/internal/handler"
	"github.com/chetan-code/todoapp/internal/repository"
	"github.com/chetan-code/todoapp/internal/view"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func loadEnvVar() {
	//load env variables
	err := godotenv.Load()
	if err != nil {
		slog.Error("environment_var_load_failure", "error", err)
		os.Exit(1)
	}
}

func initDB() *sql.DB {
	// Connection string matches the docker-compose environment variables
	dburl := os.Getenv("DB_URL")
	db, err := sql.Open("pgx", dburl)
	if err != nil {
		slog.Error("database_intialization_failed", "error", err)
		os.Exit(1)
	}

	//check if connection is alive
	err = db.Ping()
	if err != nil {
		slog.Error("database_connection_ping_failed", "error", err)
		os.Exit(1)
	}

	slog.Info("database_intialisation_success", "url", dburl)

	return db
}

func loggerMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		//logging completion of a request
		slog.Info("http_request",
			"request_id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"ip", r.RemoteAddr,
			//imp : how long does it take a req to complete
			"duration", time.Since(start).String(),
		)
	})
}

func startServer(port string, mux http.Handler) {
	err := http.ListenAndServe(port, mux)
	if err != nil {
		slog.Error("server_start_failed", "error", err)
	}
}

func setupSlog() {
	//Json handler that writes to standard out
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug, //log debug and above
		AddSource: true,            //adds file name and line number
	})

	//Intialise new logger and set it as default for the server
	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func main() {

	//structure logging
	setupSlog()

	loadEnvVar()

	db := initDB()
	defer db.Close()

	repo, err := repository.NewTodoRepo(db)
	if err != nil {
		slog.Error("repository_creation_failed", "error", err)
		os.Exit(1)
	}

	renderer, err := view.NewHTMLRenderer()
	if err != nil {
		slog.Error("template_parse_failed", "error", err)
		os.Exit(1)
	}

	h := handler.NewTodoHandler(repo, renderer)

	//routing + middleware
	wrappedMux := loggerMW(h.Routes())

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	startServer(port, wrappedMux)
}
