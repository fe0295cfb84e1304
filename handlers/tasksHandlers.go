package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"gerenciador-tarefas/database"
	"gerenciador-tarefas/models"
	"gerenciador-tarefas/utilities"

	"github.com/gorilla/mux"
)

// CreateTaskHandler cria uma tarefa pessoal. Dono e criador são o próprio
// usuário autenticado.
func (a *App) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	utilities.LogDebug("Iniciando criação de nova tarefa")

	identity, err := identityFrom(r)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Não autorizado")
		return
	}

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Time        string `json:"time"`
		Status      string `json:"status"`
		Category    string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utilities.LogError(err, "Erro ao decodificar JSON da tarefa")
		respondMessage(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	defer r.Body.Close()

	if input.Name == "" || input.Status == "" {
		utilities.LogError(fmt.Errorf("nome ou status ausente"), "Validação da tarefa falhou")
		respondMessage(w, http.StatusBadRequest, "O nome e o status são obrigatórios")
		return
	}

	taskID, err := a.Store.Create(r.Context(), models.TasksCollection, map[string]interface{}{
		"userId":      identity.UID,
		"creatorId":   identity.UID,
		"name":        input.Name,
		"description": input.Description,
		"time":        input.Time,
		"status":      input.Status,
		"category":    input.Category,
		"createdAt":   database.ServerTimestamp,
	})
	if err != nil {
		utilities.LogError(err, "Erro ao gravar tarefa no store")
		respondError(w, http.StatusInternalServerError, "Erro ao adicionar tarefa", err)
		return
	}

	utilities.LogInfo("Tarefa criada com sucesso: %s (ID: %s)", input.Name, taskID)
	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Tarefa adicionada com sucesso",
		"taskId":  taskID,
	})
}

// ListTasksHandler lista as tarefas do usuário autenticado.
func (a *App) ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Não autorizado")
		return
	}

	docs, err := a.Store.QueryEqual(r.Context(), models.TasksCollection, "userId", identity.UID)
	if err != nil {
		utilities.LogError(err, "Erro ao buscar tarefas no store")
		respondError(w, http.StatusInternalServerError, "Erro ao obter tarefas", err)
		return
	}

	tasks := make([]models.Task, 0, len(docs))
	for i := range docs {
		tasks = append(tasks, models.TaskFromDoc(&docs[i]))
	}

	utilities.LogDebug("Tarefas listadas com sucesso - total: %d", len(tasks))
	respondJSON(w, http.StatusOK, tasks)
}

// UpdateTaskHandler atualiza o status de uma tarefa. Somente o dono pode
// atualizar (mesma regra da exclusão).
func (a *App) UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	utilities.LogDebug("Iniciando atualização de tarefa")

	identity, err := identityFrom(r)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Não autorizado")
		return
	}

	taskID := mux.Vars(r)["id"]

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utilities.LogError(err, "Erro ao decodificar JSON de atualização")
		respondMessage(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	defer r.Body.Close()

	if input.Status == "" {
		respondMessage(w, http.StatusBadRequest, "O status é obrigatório")
		return
	}

	doc, err := a.Store.Get(r.Context(), models.TasksCollection, taskID)
	if err != nil {
		if errors.Is(err, database.ErrDocumentNotFound) {
			respondMessage(w, http.StatusNotFound, "Tarefa não encontrada")
			return
		}
		utilities.LogError(err, "Erro ao buscar tarefa no store")
		respondError(w, http.StatusInternalServerError, "Erro ao atualizar a tarefa", err)
		return
	}

	task := models.TaskFromDoc(doc)
	if task.UserID != identity.UID {
		utilities.LogInfo("Usuário %s tentou atualizar tarefa de outro dono: %s", identity.UID, taskID)
		respondMessage(w, http.StatusForbidden, "Você não tem permissão para atualizar esta tarefa")
		return
	}

	err = a.Store.Update(r.Context(), models.TasksCollection, taskID, map[string]interface{}{
		"status":    input.Status,
		"updatedAt": database.ServerTimestamp,
	})
	if err != nil {
		utilities.LogError(err, "Erro ao atualizar tarefa no store")
		respondError(w, http.StatusInternalServerError, "Erro ao atualizar a tarefa", err)
		return
	}

	utilities.LogInfo("Tarefa atualizada com sucesso: %s", taskID)
	respondMessage(w, http.StatusOK, "Status da tarefa atualizado com sucesso")
}

// DeleteTaskHandler exclui uma tarefa. Somente o dono pode excluir.
func (a *App) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	utilities.LogDebug("Iniciando exclusão de tarefa")

	identity, err := identityFrom(r)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Não autorizado")
		return
	}

	taskID := mux.Vars(r)["id"]

	doc, err := a.Store.Get(r.Context(), models.TasksCollection, taskID)
	if err != nil {
		if errors.Is(err, database.ErrDocumentNotFound) {
			respondMessage(w, http.StatusNotFound, "Tarefa não encontrada")
			return
		}
		utilities.LogError(err, "Erro ao buscar tarefa no store")
		respondError(w, http.StatusInternalServerError, "Erro ao excluir a tarefa", err)
		return
	}

	task := models.TaskFromDoc(doc)
	if task.UserID != identity.UID {
		utilities.LogInfo("Usuário %s tentou excluir tarefa de outro dono: %s", identity.UID, taskID)
		respondMessage(w, http.StatusForbidden, "Você não tem permissão para excluir esta tarefa")
		return
	}

	if err := a.Store.Delete(r.Context(), models.TasksCollection, taskID); err != nil {
		utilities.LogError(err, "Erro ao excluir tarefa do store")
		respondError(w, http.StatusInternalServerError, "Erro ao excluir a tarefa", err)
		return
	}

	utilities.LogInfo("Tarefa excluída com sucesso: %s", taskID)
	respondMessage(w, http.StatusOK, "Tarefa excluída com sucesso")
}
