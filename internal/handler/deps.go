package handler

import (
	"net/http"

	"shinesmile/internal/app/appointment"
	"shinesmile/internal/app/chat"
	"shinesmile/internal/app/user"
	"shinesmile/internal/configs"
	"shinesmile/internal/pkg/auth/jwt"
)

type AppDeps struct {
	Config       *configs.AppConfig
	Users        user.Store
	Appointments *appointment.Service
	Hub          *chat.Hub
}

// actorFrom maps the request's token payload onto the appointment service's caller.
func actorFrom(r *http.Request) appointment.Actor {
	payload := jwt.GetPayloadFromContext(r)
	if payload == nil {
		return appointment.Actor{}
	}
	return appointment.Actor{UserID: payload.UserID, IsAdmin: payload.IsAdmin()}
}
