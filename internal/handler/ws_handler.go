/*
Package handler provides the HTTP handler function for WebSocket connection upgrading and initialization.

HandleWebSocket rate limits the upgrade, resolves the optional access token,
upgrades the connection and attaches the resulting client to the chat hub.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"shinesmile/internal/app/chat"
	"shinesmile/internal/pkg/auth/jwt"
	"shinesmile/internal/pkg/errs"
	"shinesmile/internal/pkg/limiter"
	"shinesmile/internal/pkg/logx"
	"shinesmile/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
// A token may be passed as ?token= or as a bearer header; only an admin token
// lets the connection join the chat as staff.
func HandleWebSocket(hub *chat.Hub, upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, secretKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !rateLimiter.Allow(r) {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		canAdmin := false

		token := r.URL.Query().Get("token")
		if token == "" {
			token = jwt.BearerToken(r)
		}
		if token != "" {
			payload, err := jwt.ParseToken(token, secretKey)
			if err != nil {
				logx.Warn("WebSocket connection rejected: Invalid token.", "ip", ip)
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}
			canAdmin = payload.IsAdmin()
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := chat.NewClient(hub, conn, canAdmin)

		if err := hub.Connect(client); err != nil {
			logx.Warn("WebSocket connection dropped: chat hub is shutting down.", "client_id", client.ID())
			_ = conn.Close()
			return
		}

		logx.Info("WebSocket connection established", "client_id", client.ID(), "can_admin", canAdmin)

		go client.WritePump()

		client.ReadPump()
	}
}
