package jobs

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/events"
	"secretaria/cmd/internal/service"
	"secretaria/cmd/internal/utils"
)

const CleanInterval = 5 * time.Minute

type ConnectionCleaner struct {
	wsService *service.WebSocketService
}

func NewConnectionCleaner(wsService *service.WebSocketService) *ConnectionCleaner {
	return &ConnectionCleaner{wsService: wsService}
}

func (c *ConnectionCleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(CleanInterval)
	defer ticker.Stop()

	log.Info("Connection cleaner cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping connection cleaner...")
			return
		case <-ticker.C:
			c.cleanup(context.Background())
		}
	}
}

// cleanup drops the connections with an expired token or a missed heartbeat.
// It returns how many were dropped.
func (c *ConnectionCleaner) cleanup(ctx context.Context) int {
	conns, err := c.wsService.ConnRepo.FindExpired(utils.NowUTC())
	if err != nil {
		log.Errorf("Cleaner: failed to fetch expired connections: %v", err)
		return 0
	}

	if len(conns) == 0 {
		return 0
	}

	log.Infof("Cleaner: found %d expired connections, terminating", len(conns))

	expired := &events.SessionExpired{}
	envelope := &contract.OutgoingSocketMessage{Type: expired.GetType()}
	for _, conn := range conns {
		// the client must know not to reconnect with the same token
		_ = c.wsService.Gateway.PostToConnection(ctx, conn.ConnectionID, envelope)
		_ = c.wsService.Gateway.DeleteConnection(ctx, conn.ConnectionID)
		c.wsService.RemoveConnection(conn.ConnectionID)
	}
	return len(conns)
}
