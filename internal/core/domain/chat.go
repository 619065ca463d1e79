package domain

// ChatRole identifies who produced a chat message.
type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn in a conversation.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// NoMatchMessage is returned by search when nothing scores above zero.
const NoMatchMessage = "No relevant documents found."

// SearchHit is one scored chunk from a semantic search.
type SearchHit struct {
	Chunk ChunkRecord
	Score float64
}
