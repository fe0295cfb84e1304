package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"gerenciador-tarefas/auth"
	"gerenciador-tarefas/database"
	"gerenciador-tarefas/firebase"
	"gerenciador-tarefas/models"
	"gerenciador-tarefas/utilities"
)

// RegisterHandler registra um novo usuário: cria a conta no provedor de
// identidade e espelha o perfil na coleção users.
func (a *App) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	utilities.LogDebug("Iniciando registro de novo usuário")

	var input struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utilities.LogError(err, "Erro ao decodificar JSON do registro")
		respondMessage(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	defer r.Body.Close()

	if input.Email == "" || input.Username == "" || input.Password == "" {
		utilities.LogError(fmt.Errorf("campos obrigatórios ausentes"), "Validação do registro falhou")
		respondMessage(w, http.StatusBadRequest, "Todos os campos são obrigatórios")
		return
	}

	ctx := r.Context()

	// Verifica duplicidade de email; "não encontrado" aqui significa que
	// o registro pode prosseguir.
	_, err := a.Identity.GetUserByEmail(ctx, input.Email)
	if err == nil {
		utilities.LogInfo("Tentativa de registro com email já existente: %s", input.Email)
		respondMessage(w, http.StatusBadRequest, "O email já está registrado")
		return
	}
	if !errors.Is(err, firebase.ErrUserNotFound) {
		utilities.LogError(err, "Erro ao verificar o email no provedor de identidade")
		respondError(w, http.StatusInternalServerError, "Erro ao verificar o email", err)
		return
	}

	hashedPassword, err := auth.HashPassword(input.Password)
	if err != nil {
		utilities.LogError(err, "Erro ao gerar hash da senha")
		respondError(w, http.StatusInternalServerError, "Erro ao registrar usuário", err)
		return
	}

	record, err := a.Identity.CreateUser(ctx, input.Email, hashedPassword, input.Username)
	if err != nil {
		utilities.LogError(err, "Erro ao criar usuário no provedor de identidade")
		respondError(w, http.StatusInternalServerError, "Erro ao registrar usuário", err)
		return
	}

	err = a.Store.Set(ctx, models.UsersCollection, record.UID, map[string]interface{}{
		"username": input.Username,
		"email":    input.Email,
		"password": hashedPassword,
	})
	if err != nil {
		utilities.LogError(err, "Erro ao gravar perfil do usuário no store")
		respondError(w, http.StatusInternalServerError, "Erro ao registrar usuário", err)
		return
	}

	utilities.LogInfo("Usuário registrado com sucesso: %s", input.Email)
	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Usuário registrado com sucesso",
		"userId":  record.UID,
	})
}

// LoginHandler autentica por email e senha e emite o token de sessão.
func (a *App) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utilities.LogError(err, "Erro ao decodificar JSON do login")
		respondMessage(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	defer r.Body.Close()

	if input.Email == "" || input.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Email e senha são obrigatórios")
		return
	}

	ctx := r.Context()

	record, err := a.Identity.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, firebase.ErrUserNotFound) {
			utilities.LogInfo("Login com email desconhecido: %s", input.Email)
			respondMessage(w, http.StatusNotFound, "Usuário não encontrado")
			return
		}
		utilities.LogError(err, "Erro ao buscar usuário no provedor de identidade")
		respondError(w, http.StatusInternalServerError, "Erro ao efetuar login", err)
		return
	}

	doc, err := a.Store.Get(ctx, models.UsersCollection, record.UID)
	if err != nil {
		if errors.Is(err, database.ErrDocumentNotFound) {
			respondMessage(w, http.StatusNotFound, "Usuário não encontrado")
			return
		}
		utilities.LogError(err, "Erro ao buscar perfil do usuário no store")
		respondError(w, http.StatusInternalServerError, "Erro ao efetuar login", err)
		return
	}
	user := models.UsuarioFromDoc(doc)

	if !auth.CheckPassword(input.Password, user.Password) {
		utilities.LogInfo("Senha incorreta para o usuário: %s", input.Email)
		respondMessage(w, http.StatusUnauthorized, "Senha incorreta")
		return
	}

	token, err := a.Tokens.Generate(record.UID, user.Email, user.Username)
	if err != nil {
		utilities.LogError(err, "Erro ao gerar token de sessão")
		respondError(w, http.StatusInternalServerError, "Erro ao efetuar login", err)
		return
	}

	err = a.Store.Update(ctx, models.UsersCollection, record.UID, map[string]interface{}{
		"last_login": database.ServerTimestamp,
	})
	if err != nil {
		utilities.LogError(err, "Erro ao registrar last_login")
		respondError(w, http.StatusInternalServerError, "Erro ao efetuar login", err)
		return
	}

	utilities.LogInfo("Login efetuado com sucesso: %s", input.Email)
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Login efetuado com sucesso",
		"token":   token,
	})
}
