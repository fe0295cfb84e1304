package main

import (
	"net/http"
	"os"
	"strings"

	"gerenciador-tarefas/handlers"
	"gerenciador-tarefas/utilities"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func LoadRoutes(app *handlers.App) http.Handler {
	r := mux.NewRouter()

	// Middleware de logging global em todas as rotas
	r.Use(handlers.LoggingMiddleware)

	// --- Rotas públicas ---
	r.HandleFunc("/api/health", app.HealthHandler).Methods("GET")
	r.HandleFunc("/api/register", app.RegisterHandler).Methods("POST")
	r.HandleFunc("/api/login", app.LoginHandler).Methods("POST")

	// --- Rotas de usuários (protegidas) ---
	r.HandleFunc("/api/users", app.AuthMiddleware(app.GetAllUsersHandler)).Methods("GET")

	// --- Rotas de tarefas pessoais (protegidas) ---
	r.HandleFunc("/api/task", app.AuthMiddleware(app.CreateTaskHandler)).Methods("POST")
	r.HandleFunc("/api/tasks", app.AuthMiddleware(app.ListTasksHandler)).Methods("GET")
	r.HandleFunc("/api/task/{id}", app.AuthMiddleware(app.UpdateTaskHandler)).Methods("PUT")
	r.HandleFunc("/api/task/{id}", app.AuthMiddleware(app.DeleteTaskHandler)).Methods("DELETE")

	// --- Rotas de grupos (protegidas) ---
	r.HandleFunc("/api/group", app.AuthMiddleware(app.CreateGroupHandler)).Methods("POST")
	r.HandleFunc("/api/groups", app.AuthMiddleware(app.ListGroupsHandler)).Methods("GET")
	r.HandleFunc("/api/groups/{groupId}/add-user", app.AuthMiddleware(app.AddUserToGroupHandler)).Methods("POST")
	r.HandleFunc("/api/groups/{groupId}", app.AuthMiddleware(app.UpdateGroupCreatorHandler)).Methods("PATCH")

	// --- Rotas de tarefas em grupo (protegidas) ---
	r.HandleFunc("/api/group/{groupId}/task", app.AuthMiddleware(app.CreateGroupTaskHandler)).Methods("POST")
	r.HandleFunc("/api/group/{groupId}/tasks", app.AuthMiddleware(app.ListGroupTasksHandler)).Methods("GET")

	// Configuração do CORS
	headers := gorillahandlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"})
	methods := gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})

	allowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if allowedOriginsEnv == "" {
		allowedOrigins = []string{"*"}
		utilities.LogInfo("CORS_ALLOWED_ORIGINS não definida, permitindo todas as origens ('*'). Defina para maior segurança em produção.")
	} else {
		allowedOrigins = strings.Split(allowedOriginsEnv, ",")
	}
	origins := gorillahandlers.AllowedOrigins(allowedOrigins)
	utilities.LogInfo("Configurando CORS com origens permitidas: %v", allowedOrigins)

	return gorillahandlers.CORS(headers, methods, origins)(r)
}
