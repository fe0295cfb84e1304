package database

import (
	"context"
	"errors"
)

// ErrDocumentNotFound é retornado quando o documento solicitado não existe na coleção.
var ErrDocumentNotFound = errors.New("documento não encontrado")

// ServerTimestamp é um valor sentinela resolvido pelo store no momento da escrita.
// O backend (Firestore) substitui o sentinela pelo horário do servidor.
var ServerTimestamp = serverTimestamp{}

type serverTimestamp struct{}

// Document representa um documento lido do store, com seu ID e campos.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Field retorna o valor string de um campo do documento ("" se ausente ou de outro tipo).
func (d *Document) Field(name string) string {
	v, _ := d.Data[name].(string)
	return v
}

// StringSlice retorna o valor de um campo array como []string.
func (d *Document) StringSlice(name string) []string {
	raw, ok := d.Data[name].([]interface{})
	if !ok {
		if s, ok := d.Data[name].([]string); ok {
			return s
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// DocumentStore é a interface estreita de acesso ao banco de documentos.
// Os handlers dependem apenas dela; a implementação real fica em FirestoreStore.
type DocumentStore interface {
	// Get busca um documento pelo ID. Retorna ErrDocumentNotFound se não existir.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Create grava um novo documento com ID gerado pelo store e retorna o ID.
	Create(ctx context.Context, collection string, fields map[string]interface{}) (string, error)

	// Set grava um documento com ID conhecido, substituindo o conteúdo anterior.
	Set(ctx context.Context, collection, id string, fields map[string]interface{}) error

	// Update aplica uma atualização parcial aos campos informados.
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error

	// Delete remove um documento.
	Delete(ctx context.Context, collection, id string) error

	// GetAll retorna todos os documentos da coleção.
	GetAll(ctx context.Context, collection string) ([]Document, error)

	// QueryEqual retorna os documentos cujo campo é igual ao valor dado.
	QueryEqual(ctx context.Context, collection, field string, value interface{}) ([]Document, error)

	// QueryArrayContains retorna os documentos cujo campo array contém o valor dado.
	QueryArrayContains(ctx context.Context, collection, field string, value interface{}) ([]Document, error)

	// AppendToArray adiciona valores a um campo array de forma atômica
	// (união de conjuntos: valores já presentes não são duplicados).
	AppendToArray(ctx context.Context, collection, id, field string, values ...interface{}) error

	// Close encerra a conexão com o store.
	Close() error
}
