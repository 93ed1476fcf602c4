package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"lms-server/internal/config"
	"lms-server/internal/domain/chat"
	"lms-server/internal/domain/course"
	"lms-server/internal/infrastructure/logger"
	"lms-server/internal/infrastructure/metrics"
	"lms-server/internal/utils/platformerrors"
)

// FallbackText is appended to the ledger when the assistant call fails, so
// the user is never left without a reply.
const FallbackText = "Sorry, I can't answer right now. Please try again in a moment, or switch to admin support and our team will help you."

const systemPromptHeader = "You are the support assistant of an online course marketplace. " +
	"Answer questions about courses, purchases and learning on the platform. " +
	"Be concise and friendly. If a question needs a human, suggest switching to admin or instructor support."

// Client answers assistant-channel messages through an OpenAI-compatible
// completion endpoint. The published course catalog is folded into the system
// prompt and refreshed out of band.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	courses *course.Directory

	catalogContext atomic.Value // string
}

func NewClient(cfg *config.Config, courses *course.Directory) *Client {
	apiConfig := openai.DefaultConfig(cfg.AssistantAPIKey)
	apiConfig.BaseURL = cfg.AssistantBaseURL

	c := &Client{
		api:     openai.NewClientWithConfig(apiConfig),
		model:   cfg.AssistantModel,
		timeout: cfg.AssistantTimeout,
		courses: courses,
	}
	c.catalogContext.Store("")
	return c
}

// Reply produces the assistant answer for the latest user message in conv.
// The whole ledger is replayed so the model keeps context across the session.
func (c *Client) Reply(ctx context.Context, conv *chat.Conversation) (string, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: c.systemPrompt()},
	}
	for _, msg := range conv.Messages {
		role := openai.ChatMessageRoleUser
		if msg.Role == chat.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Text,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		metrics.RecordAssistantReply("error", time.Since(start).Seconds())
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"assistant completion failed", err, "84f1c6d0-3b29-4e57-a8d4-f60b2c791e35")
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		metrics.RecordAssistantReply("empty", time.Since(start).Seconds())
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"assistant returned an empty reply", nil, "5d07a9e2-68c4-4f13-b92a-01e8d6c4b7f5")
	}

	metrics.RecordAssistantReply("ok", time.Since(start).Seconds())
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// RefreshCatalogContext rebuilds the catalog section of the system prompt
// from the published course listing.
func (c *Client) RefreshCatalogContext(ctx context.Context) error {
	published, err := c.courses.ListPublished(ctx)
	if err != nil {
		return err
	}

	if len(published) == 0 {
		c.catalogContext.Store("")
		return nil
	}

	var sb strings.Builder
	sb.WriteString("Published courses on the platform:\n")
	for _, crs := range published {
		fmt.Fprintf(&sb, "- %s (%s, %s)\n", crs.Title, crs.Category, crs.Price.StringFixed(2))
	}
	c.catalogContext.Store(sb.String())

	log := logger.GetLogger()
	log.Info().Int("courses", len(published)).Msg("Refreshed assistant catalog context")
	return nil
}

func (c *Client) systemPrompt() string {
	catalog, _ := c.catalogContext.Load().(string)
	if catalog == "" {
		return systemPromptHeader
	}
	return systemPromptHeader + "\n\n" + catalog
}
