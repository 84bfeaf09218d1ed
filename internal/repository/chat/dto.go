package chat

import (
	"encoding/json"
	"fmt"

	domchat "github.com/vuzz-app/vuzz/internal/domain/chat"
)

// chatDTO is the stored JSON shape of a chat document.
type chatDTO struct {
	ID            string    `json:"id"`
	Participants  [2]string `json:"participants"`
	CreatedAt     int64     `json:"createdAt"`
	LastMessage   string    `json:"lastMessage,omitempty"`
	LastMessageAt int64     `json:"lastMessageAt,omitempty"`
}

// messageDTO is the stored JSON shape of one message log entry.
type messageDTO struct {
	ID       string `json:"id"`
	SenderID string `json:"senderId"`
	Text     string `json:"text"`
	SentAt   int64  `json:"sentAt"`
	Read     bool   `json:"read,omitempty"`
}

func toDTO(c *domchat.Chat) chatDTO {
	return chatDTO{
		ID:            c.ID(),
		Participants:  c.Participants(),
		CreatedAt:     c.CreatedAt(),
		LastMessage:   c.LastMessage(),
		LastMessageAt: c.LastMessageAt(),
	}
}

func messageToDTO(m *domchat.Message) messageDTO {
	return messageDTO{
		ID:       m.ID(),
		SenderID: m.SenderID(),
		Text:     m.Text(),
		SentAt:   m.SentAt(),
		Read:     m.Read(),
	}
}

func parseChat(id string, raw []byte) (domchat.Chat, error) {
	var dtos []chatDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		var dto chatDTO
		if err2 := json.Unmarshal(raw, &dto); err2 != nil {
			return domchat.Chat{}, fmt.Errorf("unmarshal chat %s: %w", id, err)
		}
		dtos = []chatDTO{dto}
	}
	if len(dtos) == 0 {
		return domchat.Chat{}, fmt.Errorf("empty chat document %s", id)
	}

	d := dtos[0]
	if d.ID == "" {
		d.ID = id
	}
	return domchat.Reconstruct(d.ID, d.Participants, d.CreatedAt, d.LastMessage, d.LastMessageAt), nil
}

func parseMessage(raw []byte) (domchat.Message, error) {
	var d messageDTO
	if err := json.Unmarshal(raw, &d); err != nil {
		return domchat.Message{}, fmt.Errorf("unmarshal message: %w", err)
	}
	return domchat.ReconstructMessage(d.ID, d.SenderID, d.Text, d.SentAt, d.Read), nil
}
