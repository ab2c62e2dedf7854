package contract

type EventType string

const (
	EventPing EventType = "ping"

	EventSessionExpired EventType = "SESSION_EXPIRED"
	EventAck            EventType = "ACK"

	EventKanbanCardMoved   EventType = "KANBAN_CARD_MOVED"
	EventKanbanCardUpdated EventType = "KANBAN_CARD_UPDATED"
	EventKanbanCardCreated EventType = "KANBAN_CARD_CREATED"
	EventApostilaUpdated   EventType = "APOSTILA_UPDATED"
)

// IncomingSocketMessage is used for messages we receive from the users.
type IncomingSocketMessage struct {
	Type EventType `json:"type"`
}

// OutgoingSocketMessage is what we send to the Client
type OutgoingSocketMessage struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}
