package handlers

import (
	"net/http"

	"gerenciador-tarefas/models"
	"gerenciador-tarefas/utilities"
)

// GetAllUsersHandler retorna todos os perfis de usuário registrados.
// O hash de senha fica de fora da resposta (campo não serializado no model).
func (a *App) GetAllUsersHandler(w http.ResponseWriter, r *http.Request) {
	docs, err := a.Store.GetAll(r.Context(), models.UsersCollection)
	if err != nil {
		utilities.LogError(err, "Erro ao buscar usuários no store")
		respondError(w, http.StatusInternalServerError, "Erro ao obter a lista de usuários", err)
		return
	}

	users := make([]models.Usuario, 0, len(docs))
	for i := range docs {
		users = append(users, models.UsuarioFromDoc(&docs[i]))
	}

	utilities.LogDebug("Usuários listados com sucesso - total: %d", len(users))
	respondJSON(w, http.StatusOK, users)
}
