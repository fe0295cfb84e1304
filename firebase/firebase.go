package firebase

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// InitializeApp inicializa o app Firebase a partir do arquivo de credenciais
// indicado em FIREBASE_CREDENTIALS_PATH. O app é criado uma única vez no
// startup e compartilhado entre o provedor de identidade e o Firestore.
func InitializeApp(ctx context.Context) (*firebase.App, error) {
	credentialsPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH não está definido nas variáveis de ambiente")
	}

	opt := option.WithCredentialsFile(credentialsPath)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar Firebase: %w", err)
	}
	return app, nil
}
