package models

import "time"

// User описывает аккаунт пользователя маркетплейса.
// Идентификаторы хранятся как непрозрачные строки, как и во всём хранилище.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	Role         string    `json:"role"`
	BlockedUsers []string  `json:"blockedUsers"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsBlocked сообщает, заблокирован ли пользователь с данным id.
func (u *User) IsBlocked(targetID string) bool {
	for _, id := range u.BlockedUsers {
		if id == targetID {
			return true
		}
	}
	return false
}

// PublicUser — представление аккаунта без служебных полей.
type PublicUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	Role         string    `json:"role"`
	BlockedUsers []string  `json:"blockedUsers"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public возвращает представление аккаунта для ответов API.
func (u *User) Public() PublicUser {
	blocked := u.BlockedUsers
	if blocked == nil {
		blocked = []string{}
	}
	return PublicUser{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		Role:         u.Role,
		BlockedUsers: blocked,
		CreatedAt:    u.CreatedAt,
	}
}

// WorkerProfile — анкета исполнителя, создаётся при онбординге.
// Рейтинг заполняется внешним механизмом и здесь не мутируется.
type WorkerProfile struct {
	UserID        string    `json:"userId"`
	DisplayName   string    `json:"displayName"`
	Bio           string    `json:"bio"`
	Categories    []string  `json:"categories"`
	ServiceRadius float64   `json:"serviceRadius"`
	RatingAvg     float64   `json:"ratingAvg"`
	RatingCount   int       `json:"ratingCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
