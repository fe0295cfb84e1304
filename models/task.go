package models

import (
	"time"

	"gerenciador-tarefas/database"
)

const TasksCollection = "tasks"

// Task é uma tarefa pessoal (GroupID vazio) ou de grupo. UserID é o dono;
// CreatorID é quem criou (nas tarefas de grupo, o criador do grupo).
type Task struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Time        string     `json:"time,omitempty"`
	Status      string     `json:"status"`
	Category    string     `json:"category,omitempty"`
	UserID      string     `json:"userId"`
	CreatorID   string     `json:"creatorId"`
	GroupID     string     `json:"groupId,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// TaskFromDoc monta uma Task a partir do documento do store.
func TaskFromDoc(doc *database.Document) Task {
	t := Task{
		ID:          doc.ID,
		Name:        doc.Field("name"),
		Description: doc.Field("description"),
		Time:        doc.Field("time"),
		Status:      doc.Field("status"),
		Category:    doc.Field("category"),
		UserID:      doc.Field("userId"),
		CreatorID:   doc.Field("creatorId"),
		GroupID:     doc.Field("groupId"),
	}
	if ts, ok := doc.Data["createdAt"].(time.Time); ok {
		t.CreatedAt = &ts
	}
	if ts, ok := doc.Data["updatedAt"].(time.Time); ok {
		t.UpdatedAt = &ts
	}
	return t
}
