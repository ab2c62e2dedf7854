package events

import "secretaria/cmd/internal/contract"

type SocketEvent interface {
	GetType() contract.EventType
}

type Ack struct{}

func (*Ack) GetType() contract.EventType {
	return contract.EventAck
}

type SessionExpired struct{}

func (*SessionExpired) GetType() contract.EventType {
	return contract.EventSessionExpired
}

// KanbanCardMoved is pushed after every accepted drop.
type KanbanCardMoved struct {
	CardID int64  `json:"card_id"`
	From   string `json:"from"`
	To     string `json:"to"`
}

func (e *KanbanCardMoved) GetType() contract.EventType {
	return contract.EventKanbanCardMoved
}

type KanbanCardUpdated struct {
	*contract.CardResponse
}

func (e *KanbanCardUpdated) GetType() contract.EventType {
	return contract.EventKanbanCardUpdated
}

type KanbanCardCreated struct {
	*contract.CardResponse
}

func (e *KanbanCardCreated) GetType() contract.EventType {
	return contract.EventKanbanCardCreated
}

type ApostilaUpdated struct {
	*contract.ApostilaResponse
}

func (e *ApostilaUpdated) GetType() contract.EventType {
	return contract.EventApostilaUpdated
}
