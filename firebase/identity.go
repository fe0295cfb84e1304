package firebase

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

// ErrUserNotFound indica que nenhuma conta corresponde ao email consultado.
// Durante o registro esse sinal significa "pode prosseguir", não é um erro real.
var ErrUserNotFound = errors.New("usuário não encontrado no provedor de identidade")

// UserRecord é o registro de um usuário no provedor de identidade.
type UserRecord struct {
	UID         string
	Email       string
	DisplayName string
}

// IdentityProvider é a interface estreita do provedor de identidade:
// busca por email e criação de contas. Implementada pelo Firebase Auth.
type IdentityProvider interface {
	GetUserByEmail(ctx context.Context, email string) (*UserRecord, error)
	CreateUser(ctx context.Context, email, password, displayName string) (*UserRecord, error)
}

// AuthProvider implementa IdentityProvider sobre o Firebase Authentication.
type AuthProvider struct {
	client *auth.Client
}

// NewAuthProvider obtém o cliente de autenticação do app Firebase.
func NewAuthProvider(ctx context.Context, app *firebase.App) (*AuthProvider, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter cliente de Auth: %w", err)
	}
	return &AuthProvider{client: client}, nil
}

// GetUserByEmail busca um usuário por email. Retorna ErrUserNotFound se não existir.
func (p *AuthProvider) GetUserByEmail(ctx context.Context, email string) (*UserRecord, error) {
	user, err := p.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("erro ao buscar usuário por e-mail: %w", err)
	}
	return &UserRecord{UID: user.UID, Email: user.Email, DisplayName: user.DisplayName}, nil
}

// CreateUser cria um usuário no Firebase Authentication.
func (p *AuthProvider) CreateUser(ctx context.Context, email, password, displayName string) (*UserRecord, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		EmailVerified(false).
		Password(password).
		DisplayName(displayName).
		Disabled(false)

	user, err := p.client.CreateUser(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar usuário: %w", err)
	}
	return &UserRecord{UID: user.UID, Email: user.Email, DisplayName: user.DisplayName}, nil
}
