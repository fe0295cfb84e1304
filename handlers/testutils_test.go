package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"gerenciador-tarefas/auth"
	"gerenciador-tarefas/database"
	"gerenciador-tarefas/firebase"
	"gerenciador-tarefas/models"
	"gerenciador-tarefas/utilities"

	"github.com/gorilla/mux"
)

const testSecret = "segredo-de-teste"

func init() {
	utilities.InitLogger()
}

// fakeStore é uma implementação em memória de database.DocumentStore.
type fakeStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]interface{}
	nextID      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{collections: map[string]map[string]map[string]interface{}{}}
}

func (s *fakeStore) collection(name string) map[string]map[string]interface{} {
	if s.collections[name] == nil {
		s.collections[name] = map[string]map[string]interface{}{}
	}
	return s.collections[name]
}

func resolveFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for name, value := range fields {
		if value == database.ServerTimestamp {
			out[name] = time.Now().UTC()
			continue
		}
		out[name] = value
	}
	return out
}

func cloneFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for name, value := range fields {
		if slice, ok := value.([]string); ok {
			out[name] = append([]string(nil), slice...)
			continue
		}
		out[name] = value
	}
	return out
}

func (s *fakeStore) Get(ctx context.Context, collection, id string) (*database.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields, ok := s.collection(collection)[id]
	if !ok {
		return nil, database.ErrDocumentNotFound
	}
	return &database.Document{ID: id, Data: cloneFields(fields)}, nil
}

func (s *fakeStore) Create(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := fmt.Sprintf("doc-%d", s.nextID)
	s.collection(collection)[id] = resolveFields(fields)
	return id, nil
}

func (s *fakeStore) Set(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection(collection)[id] = resolveFields(fields)
	return nil
}

func (s *fakeStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.collection(collection)[id]
	if !ok {
		return database.ErrDocumentNotFound
	}
	for name, value := range resolveFields(fields) {
		doc[name] = value
	}
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collection(collection), id)
	return nil
}

func (s *fakeStore) GetAll(ctx context.Context, collection string) ([]database.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var docs []database.Document
	for id, fields := range s.collection(collection) {
		docs = append(docs, database.Document{ID: id, Data: cloneFields(fields)})
	}
	return docs, nil
}

func (s *fakeStore) QueryEqual(ctx context.Context, collection, field string, value interface{}) ([]database.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var docs []database.Document
	for id, fields := range s.collection(collection) {
		if fields[field] == value {
			docs = append(docs, database.Document{ID: id, Data: cloneFields(fields)})
		}
	}
	return docs, nil
}

func (s *fakeStore) QueryArrayContains(ctx context.Context, collection, field string, value interface{}) ([]database.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var docs []database.Document
	for id, fields := range s.collection(collection) {
		slice, _ := fields[field].([]string)
		for _, item := range slice {
			if item == value {
				docs = append(docs, database.Document{ID: id, Data: cloneFields(fields)})
				break
			}
		}
	}
	return docs, nil
}

func (s *fakeStore) AppendToArray(ctx context.Context, collection, id, field string, values ...interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.collection(collection)[id]
	if !ok {
		return database.ErrDocumentNotFound
	}
	slice, _ := doc[field].([]string)
	for _, value := range values {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("valor não suportado no fake: %v", value)
		}
		present := false
		for _, item := range slice {
			if item == str {
				present = true
				break
			}
		}
		if !present {
			slice = append(slice, str)
		}
	}
	doc[field] = slice
	return nil
}

func (s *fakeStore) Close() error { return nil }

// fakeIdentity é uma implementação em memória de firebase.IdentityProvider.
type fakeIdentity struct {
	mu     sync.Mutex
	byUID  map[string]*firebase.UserRecord
	nextID int
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{byUID: map[string]*firebase.UserRecord{}}
}

func (f *fakeIdentity) GetUserByEmail(ctx context.Context, email string) (*firebase.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, record := range f.byUID {
		if record.Email == email {
			copy := *record
			return &copy, nil
		}
	}
	return nil, firebase.ErrUserNotFound
}

func (f *fakeIdentity) CreateUser(ctx context.Context, email, password, displayName string) (*firebase.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	record := &firebase.UserRecord{
		UID:         fmt.Sprintf("uid-%d", f.nextID),
		Email:       email,
		DisplayName: displayName,
	}
	f.byUID[record.UID] = record
	return record, nil
}

// testEnv reúne a aplicação e o roteador montados sobre os fakes.
type testEnv struct {
	app      *App
	store    *fakeStore
	identity *fakeIdentity
	tokens   *auth.TokenService
	router   *mux.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newFakeStore()
	identity := newFakeIdentity()
	tokens := auth.NewTokenService(testSecret, time.Hour)
	app := NewApp(store, identity, tokens)

	r := mux.NewRouter()
	r.HandleFunc("/api/health", app.HealthHandler).Methods("GET")
	r.HandleFunc("/api/register", app.RegisterHandler).Methods("POST")
	r.HandleFunc("/api/login", app.LoginHandler).Methods("POST")
	r.HandleFunc("/api/users", app.AuthMiddleware(app.GetAllUsersHandler)).Methods("GET")
	r.HandleFunc("/api/task", app.AuthMiddleware(app.CreateTaskHandler)).Methods("POST")
	r.HandleFunc("/api/tasks", app.AuthMiddleware(app.ListTasksHandler)).Methods("GET")
	r.HandleFunc("/api/task/{id}", app.AuthMiddleware(app.UpdateTaskHandler)).Methods("PUT")
	r.HandleFunc("/api/task/{id}", app.AuthMiddleware(app.DeleteTaskHandler)).Methods("DELETE")
	r.HandleFunc("/api/group", app.AuthMiddleware(app.CreateGroupHandler)).Methods("POST")
	r.HandleFunc("/api/groups", app.AuthMiddleware(app.ListGroupsHandler)).Methods("GET")
	r.HandleFunc("/api/groups/{groupId}/add-user", app.AuthMiddleware(app.AddUserToGroupHandler)).Methods("POST")
	r.HandleFunc("/api/groups/{groupId}", app.AuthMiddleware(app.UpdateGroupCreatorHandler)).Methods("PATCH")
	r.HandleFunc("/api/group/{groupId}/task", app.AuthMiddleware(app.CreateGroupTaskHandler)).Methods("POST")
	r.HandleFunc("/api/group/{groupId}/tasks", app.AuthMiddleware(app.ListGroupTasksHandler)).Methods("GET")

	return &testEnv{app: app, store: store, identity: identity, tokens: tokens, router: r}
}

// registerUser cria o usuário direto nos fakes e retorna UID e token válidos.
func (e *testEnv) registerUser(t *testing.T, email, username, password string) (string, string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("erro ao gerar hash: %v", err)
	}
	record, err := e.identity.CreateUser(context.Background(), email, hash, username)
	if err != nil {
		t.Fatalf("erro ao criar usuário fake: %v", err)
	}
	err = e.store.Set(context.Background(), models.UsersCollection, record.UID, map[string]interface{}{
		"username": username,
		"email":    email,
		"password": hash,
	})
	if err != nil {
		t.Fatalf("erro ao gravar perfil fake: %v", err)
	}

	token, err := e.tokens.Generate(record.UID, email, username)
	if err != nil {
		t.Fatalf("erro ao gerar token: %v", err)
	}
	return record.UID, token
}

// doRequest executa uma requisição contra o roteador de teste.
func (e *testEnv) doRequest(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("erro ao serializar corpo: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("erro ao decodificar resposta: %v (corpo: %s)", err, rec.Body.String())
	}
	return body
}
