package chat

import (
	domain "lms-server/internal/domain/chat"
	"lms-server/internal/utils/functional"
)

// MessageResponse is one ledger entry.
type MessageResponse struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Role      string `json:"role"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"created_at"`
}

// CourseRef names the course a conversation is attached to.
type CourseRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// InstructorRef names the instructor a conversation is assigned to.
type InstructorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ConversationResponse is the API shape of a support conversation.
type ConversationResponse struct {
	ID         string            `json:"id"`
	Object     string            `json:"object"`
	Channel    string            `json:"channel"`
	Status     string            `json:"status"`
	Course     *CourseRef        `json:"course,omitempty"`
	Instructor *InstructorRef    `json:"instructor,omitempty"`
	Messages   []MessageResponse `json:"messages"`
	CreatedAt  int64             `json:"created_at"`
	UpdatedAt  int64             `json:"updated_at"`
}

// ConversationListResponse wraps a listing.
type ConversationListResponse struct {
	Object string                 `json:"object"`
	Data   []ConversationResponse `json:"data"`
}

// PurchasedCourseResponse feeds the channel selector: one purchased course
// with its instructor.
type PurchasedCourseResponse struct {
	CourseID       string `json:"course_id"`
	CourseTitle    string `json:"course_title"`
	InstructorID   string `json:"instructor_id,omitempty"`
	InstructorName string `json:"instructor_name,omitempty"`
	PurchasedAt    int64  `json:"purchased_at"`
}

// PurchasedCourseListResponse wraps the purchased course listing.
type PurchasedCourseListResponse struct {
	Object string                    `json:"object"`
	Data   []PurchasedCourseResponse `json:"data"`
}

// NewMessageResponse converts a domain message.
func NewMessageResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:        m.PublicID,
		Object:    "chat.message",
		Role:      string(m.Role),
		Text:      m.Text,
		CreatedAt: m.CreatedAt.Unix(),
	}
}

// NewConversationResponse converts a domain conversation. Course and
// instructor refs are resolved by the handler.
func NewConversationResponse(conv *domain.Conversation, courseRef *CourseRef, instructorRef *InstructorRef) *ConversationResponse {
	return &ConversationResponse{
		ID:         conv.PublicID,
		Object:     "chat",
		Channel:    string(conv.Channel),
		Status:     string(conv.Status),
		Course:     courseRef,
		Instructor: instructorRef,
		Messages: functional.Map(conv.Messages, func(m domain.Message) MessageResponse {
			return NewMessageResponse(&m)
		}),
		CreatedAt: conv.CreatedAt.Unix(),
		UpdatedAt: conv.UpdatedAt.Unix(),
	}
}

// NewConversationListResponse wraps converted conversations.
func NewConversationListResponse(data []ConversationResponse) *ConversationListResponse {
	if data == nil {
		data = []ConversationResponse{}
	}
	return &ConversationListResponse{Object: "list", Data: data}
}
