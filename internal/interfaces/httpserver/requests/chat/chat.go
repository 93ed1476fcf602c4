package chat

// SendMessageRequest appends one message to a conversation ledger.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required,max=4000"`
}

// SwitchChannelRequest re-routes a conversation. CourseID and InstructorID
// are public IDs; InstructorID may be omitted or set to "unassigned" to leave
// the instructor assignment open.
type SwitchChannelRequest struct {
	Channel      string  `json:"channel" binding:"required,oneof=assistant admin instructor"`
	CourseID     *string `json:"course_id" binding:"omitempty,max=50"`
	InstructorID *string `json:"instructor_id" binding:"omitempty,max=50"`
}

// ListChatsQuery filters the conversation listing.
type ListChatsQuery struct {
	Channel *string `form:"channel" binding:"omitempty,oneof=assistant admin instructor"`
}
