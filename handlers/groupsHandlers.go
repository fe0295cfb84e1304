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

// CreateGroupHandler cria um grupo. O usuário autenticado vira o criador e
// entra primeiro na lista de membros.
func (a *App) CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
	utilities.LogDebug("Iniciando criação de novo grupo")

	identity, err := identityFrom(r)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Não autorizado")
		return
	}

	var input struct {
		GroupName string   `json:"groupName"`
		Users     []string `json:"users"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utilities.LogError(err, "Erro ao decodificar JSON do grupo")
		respondMessage(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	defer r.Body.Close()

	if input.GroupName == "" || len(input.Users) == 0 {
		utilities.LogError(fmt.Errorf("nome do grupo ou usuários ausentes"), "Validação do grupo falhou")
		respondMessage(w, http.StatusBadRequest, "O nome do grupo e os usuários são obrigatórios")
		return
	}

	// Criador sempre em primeiro; duplicatas na lista enviada são ignoradas.
	members := []string{identity.UID}
	seen := map[string]bool{identity.UID: true}
	for _, uid := range input.Users {
		if uid == "" || seen[uid] {
			continue
		}
		seen[uid] = true
		members = append(members, uid)
	}

	groupID, err := a.Store.Create(r.Context(), models.GroupsCollection, map[string]interface{}{
		"groupName": input.GroupName,
		"creatorId": identity.UID,
		"users":     members,
		"createdAt": database.ServerTimestamp,
	})
	if err != nil {
		utilities.LogError(err, "Erro ao gravar grupo no store")
		respondError(w, http.StatusInternalServerError, "Erro ao criar o grupo", err)
		return
	}

	utilities.LogInfo("Grupo criado com sucesso: %s (ID: %s)", input.GroupName, groupID)
	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Grupo criado com sucesso",
		"groupId": groupID,
	})
}

// ListGroupsHandler lista os grupos em que o usuário autenticado é membro.
func (a *App) ListGroupsHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Não autorizado")
		return
	}

	docs, err := a.Store.QueryArrayContains(r.Context(), models.GroupsCollection, "users", identity.UID)
	if err != nil {
		utilities.LogError(err, "Erro ao buscar grupos no store")
		respondError(w, http.StatusInternalServerError, "Erro ao obter grupos", err)
		return
	}

	groups := make([]models.Group, 0, len(docs))
	for i := range docs {
		groups = append(groups, models.GroupFromDoc(&docs[i]))
	}

	utilities.LogDebug("Grupos listados com sucesso - total: %d", len(groups))
	respondJSON(w, http.StatusOK, groups)
}

// AddUserToGroupHandler adiciona um usuário (localizado por email) ao grupo.
// Somente o criador do grupo pode adicionar; membro repetido não é regravado.
func (a *App) AddUserToGroupHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Não autorizado")
		return
	}

	groupID := mux.Vars(r)["groupId"]

	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utilities.LogError(err, "Erro ao decodificar JSON de adição de membro")
		respondMessage(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	defer r.Body.Close()

	if input.Email == "" {
		respondMessage(w, http.StatusBadRequest, "O email é obrigatório")
		return
	}

	ctx := r.Context()

	userDocs, err := a.Store.QueryEqual(ctx, models.UsersCollection, "email", input.Email)
	if err != nil {
		utilities.LogError(err, "Erro ao buscar usuário por email no store")
		respondError(w, http.StatusInternalServerError, "Erro ao adicionar usuário ao grupo", err)
		return
	}
	if len(userDocs) == 0 {
		respondMessage(w, http.StatusNotFound, "Usuário não encontrado")
		return
	}
	userID := userDocs[0].ID

	doc, err := a.Store.Get(ctx, models.GroupsCollection, groupID)
	if err != nil {
		if errors.Is(err, database.ErrDocumentNotFound) {
			respondMessage(w, http.StatusNotFound, "Grupo não encontrado")
			return
		}
		utilities.LogError(err, "Erro ao buscar grupo no store")
		respondError(w, http.StatusInternalServerError, "Erro ao adicionar usuário ao grupo", err)
		return
	}

	group := models.GroupFromDoc(doc)
	if group.CreatorID != identity.UID {
		utilities.LogInfo("Usuário %s tentou adicionar membro ao grupo %s sem ser o criador", identity.UID, groupID)
		respondMessage(w, http.StatusForbidden, "Você não tem permissão para adicionar usuários a este grupo")
		return
	}

	if group.HasMember(userID) {
		respondMessage(w, http.StatusBadRequest, "O usuário já está no grupo")
		return
	}

	// União atômica no servidor: adições concorrentes de membros diferentes
	// não se sobrescrevem.
	if err := a.Store.AppendToArray(ctx, models.GroupsCollection, groupID, "users", userID); err != nil {
		utilities.LogError(err, "Erro ao adicionar membro ao grupo no store")
		respondError(w, http.StatusInternalServerError, "Erro ao adicionar usuário ao grupo", err)
		return
	}

	utilities.LogInfo("Usuário %s adicionado ao grupo %s", userID, groupID)
	respondMessage(w, http.StatusOK, "Usuário adicionado com sucesso")
}

// UpdateGroupCreatorHandler reatribui o criador do grupo. Somente o criador
// atual pode reatribuir; o novo criador entra na lista de membros para
// preservar a regra de que o criador sempre é membro.
func (a *App) UpdateGroupCreatorHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Não autorizado")
		return
	}

	groupID := mux.Vars(r)["groupId"]

	var input struct {
		CreatorID string `json:"creatorId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utilities.LogError(err, "Erro ao decodificar JSON de atualização do criador")
		respondMessage(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	defer r.Body.Close()

	if input.CreatorID == "" {
		respondMessage(w, http.StatusBadRequest, "O creatorId é obrigatório")
		return
	}

	ctx := r.Context()

	doc, err := a.Store.Get(ctx, models.GroupsCollection, groupID)
	if err != nil {
		if errors.Is(err, database.ErrDocumentNotFound) {
			respondMessage(w, http.StatusNotFound, "Grupo não encontrado")
			return
		}
		utilities.LogError(err, "Erro ao buscar grupo no store")
		respondError(w, http.StatusInternalServerError, "Não foi possível atualizar o criador do grupo", err)
		return
	}

	group := models.GroupFromDoc(doc)
	if group.CreatorID != identity.UID {
		utilities.LogInfo("Usuário %s tentou reatribuir o criador do grupo %s sem ser o criador", identity.UID, groupID)
		respondMessage(w, http.StatusForbidden, "Você não tem permissão para atualizar o criador deste grupo")
		return
	}

	if !group.HasMember(input.CreatorID) {
		if err := a.Store.AppendToArray(ctx, models.GroupsCollection, groupID, "users", input.CreatorID); err != nil {
			utilities.LogError(err, "Erro ao incluir novo criador na lista de membros")
			respondError(w, http.StatusInternalServerError, "Não foi possível atualizar o criador do grupo", err)
			return
		}
	}

	err = a.Store.Update(ctx, models.GroupsCollection, groupID, map[string]interface{}{
		"creatorId": input.CreatorID,
	})
	if err != nil {
		utilities.LogError(err, "Erro ao atualizar criador do grupo no store")
		respondError(w, http.StatusInternalServerError, "Não foi possível atualizar o criador do grupo", err)
		return
	}

	utilities.LogInfo("Criador do grupo %s atualizado para %s", groupID, input.CreatorID)
	respondMessage(w, http.StatusOK, "O criador do grupo foi atualizado")
}

// CreateGroupTaskHandler cria uma tarefa dentro de um grupo, designada a um
// membro. Somente o criador do grupo pode criar tarefas de grupo.
func (a *App) CreateGroupTaskHandler(w http.ResponseWriter, r *http.Request) {
	utilities.LogDebug("Iniciando criação de tarefa em grupo")

	identity, err := identityFrom(r)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Não autorizado")
		return
	}

	groupID := mux.Vars(r)["groupId"]

	var input struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		Time         string `json:"time"`
		Status       string `json:"status"`
		Category     string `json:"category"`
		AssignedUser string `json:"assignedUser"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utilities.LogError(err, "Erro ao decodificar JSON da tarefa de grupo")
		respondMessage(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	defer r.Body.Close()

	if input.Name == "" || input.Status == "" || input.AssignedUser == "" {
		utilities.LogError(fmt.Errorf("nome, status ou usuário designado ausente"), "Validação da tarefa de grupo falhou")
		respondMessage(w, http.StatusBadRequest, "O nome, o status e o usuário designado são obrigatórios")
		return
	}

	ctx := r.Context()

	doc, err := a.Store.Get(ctx, models.GroupsCollection, groupID)
	if err != nil {
		if errors.Is(err, database.ErrDocumentNotFound) {
			respondMessage(w, http.StatusNotFound, "Grupo não encontrado")
			return
		}
		utilities.LogError(err, "Erro ao buscar grupo no store")
		respondError(w, http.StatusInternalServerError, "Erro ao criar a tarefa no grupo", err)
		return
	}

	group := models.GroupFromDoc(doc)
	if group.CreatorID != identity.UID {
		utilities.LogInfo("Usuário %s tentou criar tarefa no grupo %s sem ser o criador", identity.UID, groupID)
		respondMessage(w, http.StatusForbidden, "Apenas o criador do grupo pode criar tarefas")
		return
	}

	taskID, err := a.Store.Create(ctx, models.TasksCollection, map[string]interface{}{
		"groupId":     groupID,
		"userId":      input.AssignedUser,
		"creatorId":   identity.UID,
		"name":        input.Name,
		"description": input.Description,
		"time":        input.Time,
		"status":      input.Status,
		"category":    input.Category,
		"createdAt":   database.ServerTimestamp,
		"updatedAt":   database.ServerTimestamp,
	})
	if err != nil {
		utilities.LogError(err, "Erro ao gravar tarefa de grupo no store")
		respondError(w, http.StatusInternalServerError, "Erro ao criar a tarefa no grupo", err)
		return
	}

	utilities.LogInfo("Tarefa criada no grupo %s: %s (ID: %s)", groupID, input.Name, taskID)
	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Tarefa criada com sucesso",
		"taskId":  taskID,
	})
}

// ListGroupTasksHandler lista as tarefas do usuário autenticado dentro de um
// grupo, agrupadas por status. O usuário precisa ser membro do grupo.
func (a *App) ListGroupTasksHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Não autorizado")
		return
	}

	groupID := mux.Vars(r)["groupId"]
	ctx := r.Context()

	doc, err := a.Store.Get(ctx, models.GroupsCollection, groupID)
	if err != nil {
		if errors.Is(err, database.ErrDocumentNotFound) {
			respondMessage(w, http.StatusNotFound, "Grupo não encontrado")
			return
		}
		utilities.LogError(err, "Erro ao buscar grupo no store")
		respondError(w, http.StatusInternalServerError, "Erro ao obter tarefas do grupo", err)
		return
	}

	group := models.GroupFromDoc(doc)
	if !group.HasMember(identity.UID) {
		utilities.LogInfo("Usuário %s tentou listar tarefas do grupo %s sem ser membro", identity.UID, groupID)
		respondMessage(w, http.StatusForbidden, "Acesso não autorizado ao grupo")
		return
	}

	docs, err := a.Store.QueryEqual(ctx, models.TasksCollection, "groupId", groupID)
	if err != nil {
		utilities.LogError(err, "Erro ao buscar tarefas do grupo no store")
		respondError(w, http.StatusInternalServerError, "Erro ao obter tarefas do grupo", err)
		return
	}

	// Apenas as tarefas do próprio usuário, agrupadas por status.
	byStatus := map[string][]models.Task{}
	total := 0
	for i := range docs {
		task := models.TaskFromDoc(&docs[i])
		if task.UserID != identity.UID {
			continue
		}
		byStatus[task.Status] = append(byStatus[task.Status], task)
		total++
	}

	if total == 0 {
		respondMessage(w, http.StatusNotFound, "Nenhuma tarefa encontrada para o usuário neste grupo")
		return
	}

	utilities.LogDebug("Tarefas do grupo %s listadas com sucesso - total: %d", groupID, total)
	respondJSON(w, http.StatusOK, byStatus)
}
