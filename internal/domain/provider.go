package domain

import (
	"github.com/google/wire"

	"lms-server/internal/domain/chat"
	"lms-server/internal/domain/course"
	"lms-server/internal/domain/purchase"
	"lms-server/internal/domain/user"
)

// ServiceProvider wires every domain service.
var ServiceProvider = wire.NewSet(
	user.NewService,
	course.NewDirectory,
	purchase.NewLedger,
	chat.NewAuthorizer,
	chat.NewService,
	chat.NewRouter,
	chat.NewLedger,
)
