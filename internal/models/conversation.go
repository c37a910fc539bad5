package models

import "time"

// Chat — приватный диалог двух участников, привязанный к одной заявке.
// На пару (jobId, участники) существует не более одного чата.
type Chat struct {
	ID          string            `json:"id"`
	JobID       string            `json:"jobId"`
	JobTitle    string            `json:"jobTitle"`
	Members     []string          `json:"members"`
	MemberNames map[string]string `json:"memberNames"`
	LastMessage string            `json:"lastMessage"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// HasMember сообщает, входит ли пользователь в число участников чата.
func (c *Chat) HasMember(userID string) bool {
	for _, m := range c.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// Message — сообщение в чате. Лента append-only, порядок по createdAt.
type Message struct {
	ID         string    `json:"id"`
	ChatID     string    `json:"chatId"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}
