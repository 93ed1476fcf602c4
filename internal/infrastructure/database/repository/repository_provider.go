package repository

import (
	"lms-server/internal/infrastructure/database/repository/chatrepo"
	"lms-server/internal/infrastructure/database/repository/courserepo"
	"lms-server/internal/infrastructure/database/repository/purchaserepo"
	"lms-server/internal/infrastructure/database/repository/userrepo"

	"github.com/google/wire"
)

var RepositoryProvider = wire.NewSet(
	chatrepo.NewChatGormRepository,
	userrepo.NewUserGormRepository,
	courserepo.NewCourseGormRepository,
	purchaserepo.NewPurchaseGormRepository,
)
