package chatrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"lms-server/internal/domain/chat"
	"lms-server/internal/infrastructure/database/dbschema"
	"lms-server/internal/utils/functional"
	"lms-server/internal/utils/platformerrors"
)

// pendingIndexName is the partial unique index enforcing one pending
// conversation per owner. Create relies on its name to tell the race apart
// from other constraint violations.
const pendingIndexName = "idx_conversation_one_pending"

const pgUniqueViolation = "23505"

type ChatGormRepository struct {
	db *gorm.DB
}

var _ chat.Repository = (*ChatGormRepository)(nil)

func NewChatGormRepository(db *gorm.DB) chat.Repository {
	return &ChatGormRepository{db: db}
}

func (repo *ChatGormRepository) Create(ctx context.Context, conv *chat.Conversation) error {
	entity := dbschema.NewSchemaConversation(conv)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		if isPendingUniqueViolation(err) {
			return chat.ErrPendingExists
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create conversation",
			err,
			"93e5a0c7-1f48-4d26-b3a9-60d7c8e21f54",
		)
	}
	*conv = *entity.EtoD()
	return nil
}

func (repo *ChatGormRepository) FindPendingByUserID(ctx context.Context, userID uint) (*chat.Conversation, error) {
	return repo.findOne(ctx, "user_id = ? AND status = ?", userID, chat.StatusPending)
}

func (repo *ChatGormRepository) FindByID(ctx context.Context, id uint) (*chat.Conversation, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *ChatGormRepository) FindByPublicID(ctx context.Context, publicID string) (*chat.Conversation, error) {
	return repo.findOne(ctx, "public_id = ?", publicID)
}

func (repo *ChatGormRepository) FindByFilter(ctx context.Context, filter chat.Filter) ([]*chat.Conversation, error) {
	query := repo.db.WithContext(ctx).Model(&dbschema.Conversation{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Channel != nil {
		query = query.Where("channel = ?", *filter.Channel)
	}
	if scope := filter.InstructorScope; scope != nil {
		query = query.Where("channel = ?", chat.ChannelInstructor)
		if len(scope.CourseIDs) > 0 {
			query = query.Where("instructor_id = ? OR (instructor_id IS NULL AND course_id IN ?)",
				scope.InstructorID, scope.CourseIDs)
		} else {
			query = query.Where("instructor_id = ?", scope.InstructorID)
		}
	}

	var entities []dbschema.Conversation
	err := query.
		Preload("Messages", messageOrder).
		Order("updated_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list conversations",
			err,
			"5a8d2c90-7e13-4b67-a4f2-c86b09d51e73",
		)
	}
	return functional.Map(entities, func(e dbschema.Conversation) *chat.Conversation { return e.EtoD() }), nil
}

func (repo *ChatGormRepository) Update(ctx context.Context, conv *chat.Conversation) error {
	return repo.update(ctx, repo.db, conv)
}

func (repo *ChatGormRepository) UpdateWithMessage(ctx context.Context, conv *chat.Conversation, msg *chat.Message) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.update(ctx, tx, conv); err != nil {
			return err
		}
		return repo.insertMessage(ctx, tx, conv, msg)
	})
	if err != nil {
		return err
	}
	conv.Messages = append(conv.Messages, *msg)
	return nil
}

func (repo *ChatGormRepository) AppendMessage(ctx context.Context, conv *chat.Conversation, msg *chat.Message) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.insertMessage(ctx, tx, conv, msg); err != nil {
			return err
		}
		// Surface ledger activity in listing order.
		if err := tx.Model(&dbschema.Conversation{}).
			Where("id = ?", conv.ID).
			Update("updated_at", gorm.Expr("NOW()")).Error; err != nil {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError,
				"failed to touch conversation",
				err,
				"f04c7b26-8a91-4d53-b0e7-29c6d1a85f40",
			)
		}
		return nil
	})
	if err != nil {
		return err
	}
	conv.Messages = append(conv.Messages, *msg)
	return nil
}

// update writes the routable fields conditional on the version the caller
// read. Zero rows affected means the row moved on under us.
func (repo *ChatGormRepository) update(ctx context.Context, tx *gorm.DB, conv *chat.Conversation) error {
	result := tx.WithContext(ctx).
		Model(&dbschema.Conversation{}).
		Where("id = ? AND version = ?", conv.ID, conv.Version).
		Updates(map[string]any{
			"channel":       conv.Channel,
			"instructor_id": conv.InstructorID,
			"course_id":     conv.CourseID,
			"status":        conv.Status,
			"version":       conv.Version + 1,
			"updated_at":    gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update conversation",
			result.Error,
			"e17b3d58-0c94-4a62-9f85-d43a07c6b218",
		)
	}
	if result.RowsAffected == 0 {
		return chat.ErrStaleConversation
	}
	conv.Version++
	return nil
}

func (repo *ChatGormRepository) insertMessage(ctx context.Context, tx *gorm.DB, conv *chat.Conversation, msg *chat.Message) error {
	msg.ConversationID = conv.ID
	entity := dbschema.NewSchemaChatMessage(msg)
	if err := tx.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to insert message",
			err,
			"2d90f5a8-6b37-4e14-8c20-a75e1b94d6c3",
		)
	}
	*msg = *entity.EtoD()
	return nil
}

func (repo *ChatGormRepository) findOne(ctx context.Context, query string, args ...any) (*chat.Conversation, error) {
	var entity dbschema.Conversation
	err := repo.db.WithContext(ctx).
		Where(query, args...).
		Preload("Messages", messageOrder).
		First(&entity).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find conversation",
			err,
			"b6f28a05-3d79-4c41-95e8-017c4d2a6b39",
		)
	}
	return entity.EtoD(), nil
}

func messageOrder(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func isPendingUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == pendingIndexName
}
