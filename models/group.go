package models

import (
	"time"

	"gerenciador-tarefas/database"
)

const GroupsCollection = "groups"

// Group é um grupo de usuários. O criador sempre faz parte de Users.
type Group struct {
	ID        string     `json:"id"`
	GroupName string     `json:"groupName"`
	CreatorID string     `json:"creatorId"`
	Users     []string   `json:"users"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// GroupFromDoc monta um Group a partir do documento do store.
func GroupFromDoc(doc *database.Document) Group {
	g := Group{
		ID:        doc.ID,
		GroupName: doc.Field("groupName"),
		CreatorID: doc.Field("creatorId"),
		Users:     doc.StringSlice("users"),
	}
	if ts, ok := doc.Data["createdAt"].(time.Time); ok {
		g.CreatedAt = &ts
	}
	return g
}

// HasMember informa se o usuário pertence ao grupo.
func (g *Group) HasMember(uid string) bool {
	for _, member := range g.Users {
		if member == uid {
			return true
		}
	}
	return false
}
