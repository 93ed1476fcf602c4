package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lms-server/internal/interfaces/httpserver/handlers/chathandler"
	"lms-server/internal/interfaces/httpserver/middlewares"
	chatrequests "lms-server/internal/interfaces/httpserver/requests/chat"
	"lms-server/internal/interfaces/httpserver/responses"
	"lms-server/internal/utils/platformerrors"
)

type ChatRoute struct {
	handler *chathandler.ChatHandler
}

func NewChatRoute(handler *chathandler.ChatHandler) *ChatRoute {
	return &ChatRoute{handler: handler}
}

func (route *ChatRoute) RegisterRouter(router gin.IRouter) {
	chats := router.Group("/chats")
	chats.GET("", route.listChats)
	chats.POST("", route.startNewChat)
	chats.GET("/current", route.getCurrentChat)
	chats.GET("/purchased-courses", route.listPurchasedCourses)
	chats.GET("/:chat_public_id", route.getChat)
	chats.POST("/:chat_public_id/messages", route.sendMessage)
	chats.POST("/:chat_public_id/channel", route.switchChannel)
	chats.POST("/:chat_public_id/resolve", route.resolveChat)
}

// getCurrentChat godoc
// @Summary Get or create the current conversation
// @Description Returns the caller's pending support conversation, creating a fresh assistant-channel one when none exists.
// @Tags Support Chat API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} chatresponses.ConversationResponse "Current conversation"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/chats/current [get]
func (route *ChatRoute) getCurrentChat(reqCtx *gin.Context) {
	principal, ok := middlewares.UserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.LayerRoute, platformerrors.ErrorTypeUnauthorized,
			"authentication required", nil, "4c81f2a9-6e05-4d73-b8c1-2a9f0d56e384")
		return
	}

	response, err := route.handler.GetCurrent(reqCtx.Request.Context(), principal)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// startNewChat godoc
// @Summary Start a new conversation
// @Description Resolves the caller's pending conversation, if any, and opens a fresh one.
// @Tags Support Chat API
// @Security BearerAuth
// @Produce json
// @Success 201 {object} chatresponses.ConversationResponse "New conversation"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/chats [post]
func (route *ChatRoute) startNewChat(reqCtx *gin.Context) {
	principal, ok := middlewares.UserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.LayerRoute, platformerrors.ErrorTypeUnauthorized,
			"authentication required", nil, "9e25d0c7-4b81-4f36-a2d9-70c5e8b13f64")
		return
	}

	response, err := route.handler.StartNew(reqCtx.Request.Context(), principal)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusCreated, response)
}

// listChats godoc
// @Summary List conversations
// @Description Lists the conversations the caller may see: admins see all (optionally by channel), instructors see their instructor-channel scope, everyone else their own history.
// @Tags Support Chat API
// @Security BearerAuth
// @Produce json
// @Param channel query string false "Filter by channel (assistant, admin, instructor)"
// @Success 200 {object} chatresponses.ConversationListResponse "Conversations"
// @Failure 400 {object} responses.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/chats [get]
func (route *ChatRoute) listChats(reqCtx *gin.Context) {
	principal, ok := middlewares.UserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.LayerRoute, platformerrors.ErrorTypeUnauthorized,
			"authentication required", nil, "f71a3e05-8d29-4c64-91b7-e04c2d6a8f53")
		return
	}

	var query chatrequests.ListChatsQuery
	if err := reqCtx.ShouldBindQuery(&query); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.LayerRoute, platformerrors.ErrorTypeValidation,
			"invalid query parameters", err, "08c6b5d2-371e-4f98-a60d-b42f9c17e085")
		return
	}

	response, err := route.handler.List(reqCtx.Request.Context(), principal, &query)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// getChat godoc
// @Summary Get one conversation
// @Description Returns a conversation with its full message ledger, subject to access rules.
// @Tags Support Chat API
// @Security BearerAuth
// @Produce json
// @Param chat_public_id path string true "Conversation public ID"
// @Success 200 {object} chatresponses.ConversationResponse "Conversation"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Not found"
// @Router /v1/chats/{chat_public_id} [get]
func (route *ChatRoute) getChat(reqCtx *gin.Context) {
	principal, ok := middlewares.UserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.LayerRoute, platformerrors.ErrorTypeUnauthorized,
			"authentication required", nil, "61d94f2c-0a87-4e53-b1f6-8c30e5a72d94")
		return
	}

	response, err := route.handler.GetDetail(reqCtx.Request.Context(), principal, reqCtx.Param("chat_public_id"))
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// sendMessage godoc
// @Summary Append a message
// @Description Appends the caller's message to the ledger. On the assistant channel the automated reply (or a fallback) follows in the same response.
// @Tags Support Chat API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param chat_public_id path string true "Conversation public ID"
// @Param request body chatrequests.SendMessageRequest true "Message"
// @Success 200 {object} chatresponses.ConversationResponse "Updated conversation"
// @Failure 400 {object} responses.ErrorResponse "Invalid request"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 409 {object} responses.ErrorResponse "Conversation resolved"
// @Router /v1/chats/{chat_public_id}/messages [post]
func (route *ChatRoute) sendMessage(reqCtx *gin.Context) {
	principal, ok := middlewares.UserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.LayerRoute, platformerrors.ErrorTypeUnauthorized,
			"authentication required", nil, "a04b7e19-5c62-4d38-90f5-27e8c1d64b03")
		return
	}

	var req chatrequests.SendMessageRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.LayerRoute, platformerrors.ErrorTypeValidation,
			"invalid request body", err, "3f5d8c20-9b74-4a16-e2d0-185a6f39c427")
		return
	}

	response, err := route.handler.SendMessage(reqCtx.Request.Context(), principal, reqCtx.Param("chat_public_id"), &req)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// switchChannel godoc
// @Summary Switch support channel
// @Description Re-routes the conversation to assistant, admin or instructor support. Instructor support requires a purchased course.
// @Tags Support Chat API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param chat_public_id path string true "Conversation public ID"
// @Param request body chatrequests.SwitchChannelRequest true "Target channel"
// @Success 200 {object} chatresponses.ConversationResponse "Updated conversation"
// @Failure 400 {object} responses.ErrorResponse "Missing purchase, invalid assignment or missing parameters"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 409 {object} responses.ErrorResponse "Concurrent update"
// @Router /v1/chats/{chat_public_id}/channel [post]
func (route *ChatRoute) switchChannel(reqCtx *gin.Context) {
	principal, ok := middlewares.UserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.LayerRoute, platformerrors.ErrorTypeUnauthorized,
			"authentication required", nil, "c93e0a58-7f14-4b62-85d3-f60b29c41e87")
		return
	}

	var req chatrequests.SwitchChannelRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.LayerRoute, platformerrors.ErrorTypeValidation,
			"invalid request body", err, "58b1f6d4-2e09-4c73-a8b5-01d7e3c92f46")
		return
	}

	response, err := route.handler.SwitchChannel(reqCtx.Request.Context(), principal, reqCtx.Param("chat_public_id"), &req)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// resolveChat godoc
// @Summary Resolve a conversation
// @Description Marks the conversation resolved. Resolving an already resolved conversation is a no-op.
// @Tags Support Chat API
// @Security BearerAuth
// @Produce json
// @Param chat_public_id path string true "Conversation public ID"
// @Success 200 {object} chatresponses.ConversationResponse "Resolved conversation"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Not found"
// @Router /v1/chats/{chat_public_id}/resolve [post]
func (route *ChatRoute) resolveChat(reqCtx *gin.Context) {
	principal, ok := middlewares.UserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.LayerRoute, platformerrors.ErrorTypeUnauthorized,
			"authentication required", nil, "75f2c8b0-4a61-4e95-b3d8-29c04e17a6f5")
		return
	}

	response, err := route.handler.Resolve(reqCtx.Request.Context(), principal, reqCtx.Param("chat_public_id"))
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// listPurchasedCourses godoc
// @Summary List purchased courses with instructors
// @Description Lists the caller's completed course purchases with their instructors, used by the channel selector.
// @Tags Support Chat API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} chatresponses.PurchasedCourseListResponse "Purchased courses"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/chats/purchased-courses [get]
func (route *ChatRoute) listPurchasedCourses(reqCtx *gin.Context) {
	principal, ok := middlewares.UserFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.LayerRoute, platformerrors.ErrorTypeUnauthorized,
			"authentication required", nil, "e28a5d07-9c43-4f61-80b2-d71f3e94c850")
		return
	}

	response, err := route.handler.PurchasedCourses(reqCtx.Request.Context(), principal)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}
