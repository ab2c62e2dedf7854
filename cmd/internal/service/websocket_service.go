package service

import (
	"context"
	"errors"

	"github.com/labstack/gommon/log"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/domain/events"
	"secretaria/cmd/internal/infrastructure/aws/websocket"
	"secretaria/cmd/internal/utils"
	"secretaria/cmd/internal/utils/apierror"
)

type ConnectionRepository interface {
	Save(conn *entity.Connection) error
	Delete(connID string) error
	FindByUnidadeID(unidadeID int64) ([]string, error)
	FindAll() ([]string, error)
	FindExpired(now int64) ([]*entity.Connection, error)
	UpdateHeartbeat(connID string, now int64) error
}

// Broadcaster pushes board events to the connected staff of a unidade.
type Broadcaster interface {
	BroadcastToUnidade(ctx context.Context, unidadeID int64, evt events.SocketEvent)
}

type WebSocketService struct {
	ConnRepo ConnectionRepository
	Gateway  websocket.GatewayClient
}

func NewWebSocketService(repo ConnectionRepository, gateway websocket.GatewayClient) *WebSocketService {
	return &WebSocketService{
		ConnRepo: repo,
		Gateway:  gateway,
	}
}

func (s *WebSocketService) RegisterConnection(actor *entity.User, connectionID string, exp int64) apierror.ErrorResponse {
	now := utils.NowUTC()
	conn := &entity.Connection{
		ConnectionID:    connectionID,
		UserID:          actor.ID,
		UnidadeID:       actor.UnidadeID,
		ExpiresAt:       exp * 1000, // "exp" is stored in seconds, our app uses millis
		LastHeartbeatAt: now,        // Avoid users getting disconnected immediately
		CreatedAt:       now,
	}

	if err := s.ConnRepo.Save(conn); err != nil {
		log.Errorf("failed to save connection: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func (s *WebSocketService) RemoveConnection(connectionID string) {
	// We don't return error here because if it fails, it's not the client's fault
	if err := s.ConnRepo.Delete(connectionID); err != nil {
		log.Warnf("failed to remove connection %s: %v", connectionID, err)
	}
}

func (s *WebSocketService) HandleMessage(msg *contract.IncomingSocketMessage, connID string) {
	switch msg.Type {
	case contract.EventPing:
		s.handlePing(connID)
	}
}

// BroadcastToUnidade sends an event to every connection of the unidade.
// One stale connection does not block the others.
func (s *WebSocketService) BroadcastToUnidade(ctx context.Context, unidadeID int64, evt events.SocketEvent) {
	conns, err := s.ConnRepo.FindByUnidadeID(unidadeID)
	if err != nil {
		log.Errorf("failed to fetch connections for unidade %d: %v", unidadeID, err)
		return
	}

	envelope := &contract.OutgoingSocketMessage{
		Type: evt.GetType(),
		Data: evt,
	}

	for _, connID := range conns {
		err := s.Gateway.PostToConnection(ctx, connID, envelope)
		if errors.Is(err, websocket.ErrConnectionGone) {
			s.RemoveConnection(connID)
		}
	}
}

func (s *WebSocketService) handlePing(connID string) {
	now := utils.NowUTC()
	err := s.ConnRepo.UpdateHeartbeat(connID, now)
	if err != nil {
		log.Errorf("failed to update heartbeat: %v", err)
		return
	}

	go func(conn string) {
		err := s.Gateway.PostToConnection(context.Background(), conn, &contract.OutgoingSocketMessage{
			Type: contract.EventAck,
		})
		if err != nil {
			log.Errorf("failed to post ack to conn %s: %v", conn, err)
		}
	}(connID)
}
