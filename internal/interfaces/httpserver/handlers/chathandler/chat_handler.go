package chathandler

import (
	"context"

	"github.com/rs/zerolog"

	"lms-server/internal/domain/chat"
	"lms-server/internal/domain/course"
	"lms-server/internal/domain/purchase"
	"lms-server/internal/domain/user"
	"lms-server/internal/infrastructure/assistant"
	"lms-server/internal/infrastructure/metrics"
	chatrequests "lms-server/internal/interfaces/httpserver/requests/chat"
	chatresponses "lms-server/internal/interfaces/httpserver/responses/chat"
	"lms-server/internal/utils/platformerrors"
)

// ChatHandler drives the support chat use cases behind the v1 routes.
type ChatHandler struct {
	lifecycle *chat.Service
	router    *chat.Router
	ledger    *chat.Ledger
	assistant *assistant.Client
	courses   *course.Directory
	purchases *purchase.Ledger
	users     *user.Service
	logger    zerolog.Logger
}

func NewChatHandler(
	lifecycle *chat.Service,
	router *chat.Router,
	ledger *chat.Ledger,
	assistantClient *assistant.Client,
	courses *course.Directory,
	purchases *purchase.Ledger,
	users *user.Service,
	logger zerolog.Logger,
) *ChatHandler {
	return &ChatHandler{
		lifecycle: lifecycle,
		router:    router,
		ledger:    ledger,
		assistant: assistantClient,
		courses:   courses,
		purchases: purchases,
		users:     users,
		logger:    logger,
	}
}

// GetCurrent returns the principal's pending conversation, creating one when
// none exists.
func (h *ChatHandler) GetCurrent(ctx context.Context, principal *user.User) (*chatresponses.ConversationResponse, error) {
	conv, created, err := h.lifecycle.GetOrCreateCurrent(ctx, principal)
	if err != nil {
		return nil, err
	}
	if created {
		metrics.ConversationsCreatedTotal.Inc()
	}
	return h.conversationResponse(ctx, conv), nil
}

// StartNew resolves the principal's pending conversation and opens a fresh one.
func (h *ChatHandler) StartNew(ctx context.Context, principal *user.User) (*chatresponses.ConversationResponse, error) {
	conv, err := h.lifecycle.StartNew(ctx, principal)
	if err != nil {
		return nil, err
	}
	metrics.ConversationsCreatedTotal.Inc()
	return h.conversationResponse(ctx, conv), nil
}

// List returns the conversations the principal may see.
func (h *ChatHandler) List(ctx context.Context, principal *user.User, query *chatrequests.ListChatsQuery) (*chatresponses.ConversationListResponse, error) {
	var channel *chat.Channel
	if query.Channel != nil {
		ch := chat.Channel(*query.Channel)
		channel = &ch
	}

	conversations, err := h.lifecycle.List(ctx, principal, channel)
	if err != nil {
		return nil, err
	}

	data := make([]chatresponses.ConversationResponse, 0, len(conversations))
	for _, conv := range conversations {
		data = append(data, *h.conversationResponse(ctx, conv))
	}
	return chatresponses.NewConversationListResponse(data), nil
}

// GetDetail returns one conversation by public ID.
func (h *ChatHandler) GetDetail(ctx context.Context, principal *user.User, publicID string) (*chatresponses.ConversationResponse, error) {
	conv, err := h.lifecycle.GetByPublicID(ctx, principal, publicID)
	if err != nil {
		return nil, err
	}
	return h.conversationResponse(ctx, conv), nil
}

// SendMessage appends the principal's message and, on the assistant channel,
// follows up with the automated reply. An assistant failure never fails the
// request: the user message is already in the ledger and a fallback reply is
// appended instead.
func (h *ChatHandler) SendMessage(ctx context.Context, principal *user.User, publicID string, req *chatrequests.SendMessageRequest) (*chatresponses.ConversationResponse, error) {
	conv, err := h.lifecycle.GetByPublicID(ctx, principal, publicID)
	if err != nil {
		return nil, err
	}

	msg, err := h.ledger.Append(ctx, principal, conv, req.Text)
	if err != nil {
		return nil, err
	}
	metrics.RecordMessageAppended(string(msg.Role), string(conv.Channel))

	if conv.Channel == chat.ChannelAssistant && msg.Role == chat.RoleUser {
		h.appendAssistantReply(ctx, conv)
	}

	return h.conversationResponse(ctx, conv), nil
}

// SwitchChannel re-routes the conversation per the request.
func (h *ChatHandler) SwitchChannel(ctx context.Context, principal *user.User, publicID string, req *chatrequests.SwitchChannelRequest) (*chatresponses.ConversationResponse, error) {
	conv, err := h.lifecycle.GetByPublicID(ctx, principal, publicID)
	if err != nil {
		return nil, err
	}

	courseID, err := h.resolveCourseID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	instructorID, err := h.resolveInstructorID(ctx, req.InstructorID)
	if err != nil {
		return nil, err
	}

	conv, err = h.router.SwitchChannel(ctx, principal, conv, chat.Channel(req.Channel), instructorID, courseID)
	if err != nil {
		return nil, err
	}
	metrics.RecordChannelSwitch(req.Channel)

	return h.conversationResponse(ctx, conv), nil
}

// Resolve marks the conversation resolved.
func (h *ChatHandler) Resolve(ctx context.Context, principal *user.User, publicID string) (*chatresponses.ConversationResponse, error) {
	conv, err := h.lifecycle.GetByPublicID(ctx, principal, publicID)
	if err != nil {
		return nil, err
	}

	wasPending := !conv.IsResolved()
	conv, err = h.lifecycle.Resolve(ctx, principal, conv)
	if err != nil {
		return nil, err
	}
	if wasPending {
		metrics.ConversationsResolvedTotal.Inc()
	}

	return h.conversationResponse(ctx, conv), nil
}

// PurchasedCourses lists the principal's completed purchases with their
// instructors, feeding the channel selector.
func (h *ChatHandler) PurchasedCourses(ctx context.Context, principal *user.User) (*chatresponses.PurchasedCourseListResponse, error) {
	purchases, err := h.purchases.CompletedByUser(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	data := make([]chatresponses.PurchasedCourseResponse, 0, len(purchases))
	for _, p := range purchases {
		crs, err := h.courses.Get(ctx, p.CourseID)
		if err != nil {
			if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
				// Course withdrawn since purchase; not selectable.
				continue
			}
			return nil, err
		}

		entry := chatresponses.PurchasedCourseResponse{
			CourseID:    crs.PublicID,
			CourseTitle: crs.Title,
			PurchasedAt: p.CreatedAt.Unix(),
		}
		if instructor, err := h.users.GetByID(ctx, crs.CreatorID); err == nil {
			entry.InstructorID = instructor.PublicID
			entry.InstructorName = instructor.Name
		}
		data = append(data, entry)
	}

	return &chatresponses.PurchasedCourseListResponse{Object: "list", Data: data}, nil
}

func (h *ChatHandler) appendAssistantReply(ctx context.Context, conv *chat.Conversation) {
	reply, err := h.assistant.Reply(ctx, conv)
	if err != nil {
		h.logger.Warn().Err(err).Str("conversation", conv.PublicID).Msg("assistant reply failed, using fallback")
		reply = assistant.FallbackText
	}

	if _, err := h.ledger.AppendAssistant(ctx, conv, reply); err != nil {
		h.logger.Error().Err(err).Str("conversation", conv.PublicID).Msg("failed to append assistant reply")
		return
	}
	metrics.RecordMessageAppended(string(chat.RoleAssistant), string(conv.Channel))
}

// conversationResponse resolves the course and instructor refs best effort.
// A missing ref never fails the request.
func (h *ChatHandler) conversationResponse(ctx context.Context, conv *chat.Conversation) *chatresponses.ConversationResponse {
	var courseRef *chatresponses.CourseRef
	var instructorRef *chatresponses.InstructorRef

	if conv.CourseID != nil {
		if crs, err := h.courses.Get(ctx, *conv.CourseID); err == nil {
			courseRef = &chatresponses.CourseRef{ID: crs.PublicID, Title: crs.Title}
		}
	}
	if conv.InstructorID != nil {
		if instructor, err := h.users.GetByID(ctx, *conv.InstructorID); err == nil {
			instructorRef = &chatresponses.InstructorRef{ID: instructor.PublicID, Name: instructor.Name}
		}
	}

	return chatresponses.NewConversationResponse(conv, courseRef, instructorRef)
}

func (h *ChatHandler) resolveCourseID(ctx context.Context, publicID *string) (*uint, error) {
	if publicID == nil || *publicID == "" {
		return nil, nil
	}
	crs, err := h.courses.GetByPublicID(ctx, *publicID)
	if err != nil {
		return nil, err
	}
	return &crs.ID, nil
}

func (h *ChatHandler) resolveInstructorID(ctx context.Context, publicID *string) (*uint, error) {
	if publicID == nil || *publicID == "" || *publicID == "unassigned" {
		return nil, nil
	}
	instructor, err := h.users.GetByPublicID(ctx, *publicID)
	if err != nil {
		return nil, err
	}
	return &instructor.ID, nil
}
