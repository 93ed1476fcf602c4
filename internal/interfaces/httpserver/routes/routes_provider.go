package routes

import (
	"lms-server/internal/interfaces/httpserver/handlers/chathandler"
	v1 "lms-server/internal/interfaces/httpserver/routes/v1"
	"lms-server/internal/interfaces/httpserver/routes/v1/chat"

	"github.com/google/wire"
)

var RouteProvider = wire.NewSet(
	// Handlers
	chathandler.NewChatHandler,

	// Routes
	chat.NewChatRoute,
	v1.NewV1Route,
)
