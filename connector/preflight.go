package connector

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
)

const DefaultPreflightTimeout = 5 * time.Second

// Preflight checks once that endpoint accepts WebSocket connections, then closes the connection.
// It doesn't speak the automation protocol, it only fails fast with a clearer error than a protocol-level connect would give.
func Preflight(ctx context.Context, log *zap.SugaredLogger, endpoint string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Debugw("dialing WebSocket for preflight", "URL", endpoint)
	conn, _, err := websocket.Dial(ctx, endpoint, nil)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", endpoint, err)
	}
	err = conn.Close(websocket.StatusNormalClosure, "preflight")
	if err != nil {
		log.Debugf("error closing preflight conn: %s", err)
	}
	return nil
}
