package dbschema

import (
	"lms-server/internal/domain/chat"
	"lms-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Conversation{})
	database.RegisterSchemaForAutoMigrate(ChatMessage{})
}

// Conversation represents the database schema for support conversations.
// The partial unique index on UserID enforces at most one pending
// conversation per owner.
type Conversation struct {
	BaseModel
	PublicID     string       `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID       uint         `gorm:"index:idx_conversation_user_status;uniqueIndex:idx_conversation_one_pending,where:status = 'pending';not null"`
	User         User         `gorm:"foreignKey:UserID"`
	Channel      chat.Channel `gorm:"type:varchar(20);index;not null;default:'assistant'"`
	InstructorID *uint        `gorm:"index"`
	Instructor   *User        `gorm:"foreignKey:InstructorID"`
	CourseID     *uint        `gorm:"index"`
	Course       *Course      `gorm:"foreignKey:CourseID"`
	Status       chat.Status  `gorm:"type:varchar(20);index:idx_conversation_user_status;not null;default:'pending'"`
	Version      uint         `gorm:"not null;default:1"`

	Messages []ChatMessage `gorm:"foreignKey:ConversationID"`
}

// ChatMessage represents the database schema for ledger entries. Rows are
// insert-only.
type ChatMessage struct {
	BaseModel
	PublicID       string           `gorm:"type:varchar(50);uniqueIndex;not null"`
	ConversationID uint             `gorm:"index;not null"`
	Conversation   Conversation     `gorm:"foreignKey:ConversationID"`
	Role           chat.MessageRole `gorm:"type:varchar(20);not null"`
	Text           string           `gorm:"type:text;not null"`
}

// NewSchemaConversation creates a database schema from a domain conversation
func NewSchemaConversation(c *chat.Conversation) *Conversation {
	sc := &Conversation{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		PublicID:     c.PublicID,
		UserID:       c.UserID,
		Channel:      c.Channel,
		InstructorID: c.InstructorID,
		CourseID:     c.CourseID,
		Status:       c.Status,
		Version:      c.Version,
	}
	for i := range c.Messages {
		sc.Messages = append(sc.Messages, *NewSchemaChatMessage(&c.Messages[i]))
	}
	return sc
}

// NewSchemaChatMessage creates a database schema from a domain message
func NewSchemaChatMessage(m *chat.Message) *ChatMessage {
	return &ChatMessage{
		BaseModel: BaseModel{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
		},
		PublicID:       m.PublicID,
		ConversationID: m.ConversationID,
		Role:           m.Role,
		Text:           m.Text,
	}
}

// EtoD converts database schema to domain conversation (Entity to Domain)
func (c *Conversation) EtoD() *chat.Conversation {
	conv := &chat.Conversation{
		ID:           c.ID,
		PublicID:     c.PublicID,
		UserID:       c.UserID,
		Channel:      c.Channel,
		InstructorID: c.InstructorID,
		CourseID:     c.CourseID,
		Status:       c.Status,
		Version:      c.Version,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	for i := range c.Messages {
		conv.Messages = append(conv.Messages, *c.Messages[i].EtoD())
	}
	return conv
}

// EtoD converts database schema to domain message (Entity to Domain)
func (m *ChatMessage) EtoD() *chat.Message {
	return &chat.Message{
		ID:             m.ID,
		PublicID:       m.PublicID,
		ConversationID: m.ConversationID,
		Role:           m.Role,
		Text:           m.Text,
		CreatedAt:      m.CreatedAt,
	}
}
