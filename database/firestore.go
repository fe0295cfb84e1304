package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
)

// FirestoreStore implementa DocumentStore sobre o Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// ConnectFirestore obtém o cliente do Firestore a partir do app Firebase já inicializado.
// O cliente é criado uma única vez na inicialização e injetado nos handlers.
func ConnectFirestore(ctx context.Context, app *firebase.App) (*FirestoreStore, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter cliente do Firestore: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		// O cliente do Firestore retorna o snapshot mesmo em caso de NotFound.
		if snap != nil && !snap.Exists() {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("erro ao buscar documento %s/%s: %w", collection, id, err)
	}
	return &Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *FirestoreStore) Create(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	ref := s.client.Collection(collection).NewDoc()
	if _, err := ref.Set(ctx, resolveSentinels(fields)); err != nil {
		return "", fmt.Errorf("erro ao criar documento em %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, resolveSentinels(fields)); err != nil {
		return fmt.Errorf("erro ao gravar documento %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields))
	for name, value := range resolveSentinels(fields) {
		updates = append(updates, firestore.Update{Path: name, Value: value})
	}
	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		return fmt.Errorf("erro ao atualizar documento %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("erro ao deletar documento %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) GetAll(ctx context.Context, collection string) ([]Document, error) {
	return s.runQuery(ctx, s.client.Collection(collection).Query)
}

func (s *FirestoreStore) QueryEqual(ctx context.Context, collection, field string, value interface{}) ([]Document, error) {
	return s.runQuery(ctx, s.client.Collection(collection).Where(field, "==", value))
}

func (s *FirestoreStore) QueryArrayContains(ctx context.Context, collection, field string, value interface{}) ([]Document, error) {
	return s.runQuery(ctx, s.client.Collection(collection).Where(field, "array-contains", value))
}

// AppendToArray usa firestore.ArrayUnion, que é atômico no servidor: duas
// adições concorrentes com valores diferentes não se perdem.
func (s *FirestoreStore) AppendToArray(ctx context.Context, collection, id, field string, values ...interface{}) error {
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.ArrayUnion(values...)},
	})
	if err != nil {
		return fmt.Errorf("erro ao adicionar valores ao campo %s de %s/%s: %w", field, collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) runQuery(ctx context.Context, q firestore.Query) ([]Document, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("erro ao iterar resultados da query: %w", err)
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

// resolveSentinels troca o sentinela ServerTimestamp pelo equivalente do Firestore.
func resolveSentinels(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for name, value := range fields {
		if _, ok := value.(serverTimestamp); ok {
			out[name] = firestore.ServerTimestamp
			continue
		}
		out[name] = value
	}
	return out
}
