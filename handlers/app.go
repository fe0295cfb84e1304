package handlers

import (
	"encoding/json"
	"net/http"

	"gerenciador-tarefas/auth"
	"gerenciador-tarefas/database"
	"gerenciador-tarefas/firebase"
)

// App agrupa as dependências externas dos handlers. Construído uma única vez
// no startup e injetado via construtor em vez de estado global de pacote.
type App struct {
	Store    database.DocumentStore
	Identity firebase.IdentityProvider
	Tokens   *auth.TokenService
}

func NewApp(store database.DocumentStore, identity firebase.IdentityProvider, tokens *auth.TokenService) *App {
	return &App{Store: store, Identity: identity, Tokens: tokens}
}

// HealthHandler responde o health check da aplicação.
func (a *App) HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondJSON escreve a resposta JSON com o status informado.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondMessage escreve uma resposta {"message": ...}.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError escreve uma resposta de erro com a causa, quando houver.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]string{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	respondJSON(w, status, body)
}
