package models

import (
	"time"

	"gerenciador-tarefas/database"
)

// UsersCollection é a coleção que espelha os perfis do provedor de identidade.
const UsersCollection = "users"

type Usuario struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Password  string     `json:"-"` // hash bcrypt; nunca serializado nas respostas
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// UsuarioFromDoc monta um Usuario a partir do documento do store.
func UsuarioFromDoc(doc *database.Document) Usuario {
	u := Usuario{
		ID:       doc.ID,
		Username: doc.Field("username"),
		Email:    doc.Field("email"),
		Password: doc.Field("password"),
	}
	if t, ok := doc.Data["last_login"].(time.Time); ok {
		u.LastLogin = &t
	}
	return u
}
