package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/ignatzorin/workova-backend/internal/models"
	"github.com/ignatzorin/workova-backend/internal/pkg/apperror"
	"github.com/ignatzorin/workova-backend/internal/repository"
	"github.com/ignatzorin/workova-backend/internal/validation"
)

// AuthService инкапсулирует учётные записи, текущую сессию и
// чёрные списки.
type AuthService struct {
	store *repository.Store
}

// NewAuthService создаёт сервис аккаунтов.
func NewAuthService(store *repository.Store) *AuthService {
	return &AuthService{store: store}
}

// SignUpInput содержит данные пользователя при регистрации.
type SignUpInput struct {
	Email       string
	Password    string
	DisplayName string
}

// SignUp создаёт аккаунт и делает его текущей сессией.
// Пароль хешируется и сохраняется, но при входе не проверяется:
// вход остаётся по одному email.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateDisplayName(in.DisplayName); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	email := validation.NormalizeEmail(in.Email)

	var passHash string
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, "не удалось обработать пароль")
		}
		passHash = string(hash)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		PasswordHash: passHash,
		Role:         models.RoleCustomer,
		BlockedUsers: []string{},
		CreatedAt:    time.Now().UTC(),
	}

	err := s.store.Update(ctx, func(tx *repository.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.Email == email {
				return apperror.New(apperror.ErrCodeDuplicateAccount, "аккаунт с таким email уже существует")
			}
		}
		users[user.ID] = user
		if err := tx.SetUsers(users); err != nil {
			return err
		}
		return tx.SetSessionUserID(user.ID)
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// SignIn находит аккаунт по email и делает его текущей сессией.
// Пароль принимается, но не сверяется.
func (s *AuthService) SignIn(ctx context.Context, email, _password string) (*models.User, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	normalized := validation.NormalizeEmail(email)

	var found *models.User
	err := s.store.Update(ctx, func(tx *repository.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.Email == normalized {
				u := u
				found = &u
				break
			}
		}
		if found == nil {
			return apperror.ErrAccountNotFound
		}
		return tx.SetSessionUserID(found.ID)
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// SignOut завершает текущую сессию.
func (s *AuthService) SignOut(ctx context.Context) error {
	return s.store.Update(ctx, func(tx *repository.Tx) error {
		return tx.ClearSession()
	})
}

// CurrentUser возвращает пользователя текущей сессии.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	var user *models.User
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		sessionID, err := tx.SessionUserID()
		if err != nil {
			return err
		}
		if sessionID == "" {
			return apperror.ErrUnauthorized
		}
		users, err := tx.Users()
		if err != nil {
			return err
		}
		u, ok := users[sessionID]
		if !ok {
			return apperror.ErrUnauthorized
		}
		user = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser возвращает аккаунт по идентификатору.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user *models.User
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return err
		}
		u, ok := users[id]
		if !ok {
			return apperror.ErrAccountNotFound
		}
		user = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail ищет аккаунт по нормализованному email.
func (s *AuthService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	normalized := validation.NormalizeEmail(email)
	var user *models.User
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.Email == normalized {
				u := u
				user = &u
				return nil
			}
		}
		return apperror.ErrAccountNotFound
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SetRole меняет роль аккаунта. Идемпотентно.
func (s *AuthService) SetRole(ctx context.Context, accountID, role string) (*models.User, error) {
	if _, ok := models.ValidRoles[role]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "некорректная роль")
	}

	var user *models.User
	err := s.store.Update(ctx, func(tx *repository.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return err
		}
		u, ok := users[accountID]
		if !ok {
			return apperror.ErrAccountNotFound
		}
		u.Role = role
		users[accountID] = u
		user = &u
		return tx.SetUsers(users)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Block добавляет targetID в чёрный список актора. Повторная блокировка —
// no-op. Уже созданные чаты и предложения не трогаются: блокировка
// меняет будущую видимость, а не историю.
func (s *AuthService) Block(ctx context.Context, actorID, targetID string) (*models.User, error) {
	if targetID == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "не указан блокируемый пользователь")
	}
	if actorID == targetID {
		return nil, apperror.New(apperror.ErrCodeValidation, "нельзя заблокировать самого себя")
	}

	var user *models.User
	err := s.store.Update(ctx, func(tx *repository.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return err
		}
		u, ok := users[actorID]
		if !ok {
			return apperror.ErrAccountNotFound
		}
		if !u.IsBlocked(targetID) {
			u.BlockedUsers = append(u.BlockedUsers, targetID)
			users[actorID] = u
			if err := tx.SetUsers(users); err != nil {
				return err
			}
		}
		user = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Unblock убирает targetID из чёрного списка актора. Идемпотентно.
func (s *AuthService) Unblock(ctx context.Context, actorID, targetID string) (*models.User, error) {
	var user *models.User
	err := s.store.Update(ctx, func(tx *repository.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return err
		}
		u, ok := users[actorID]
		if !ok {
			return apperror.ErrAccountNotFound
		}
		filtered := u.BlockedUsers[:0]
		for _, id := range u.BlockedUsers {
			if id != targetID {
				filtered = append(filtered, id)
			}
		}
		u.BlockedUsers = filtered
		users[actorID] = u
		user = &u
		return tx.SetUsers(users)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount каскадно удаляет аккаунт и все связанные данные в одной
// транзакции: анкету, заявки, предложения, чаты с его участием и
// отправленные им сообщения. Сессия сбрасывается, если указывала на
// удаляемый аккаунт. Частично удалённый аккаунт снаружи не наблюдаем.
func (s *AuthService) DeleteAccount(ctx context.Context, accountID string) error {
	return s.store.Update(ctx, func(tx *repository.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return err
		}
		if _, ok := users[accountID]; !ok {
			return apperror.ErrAccountNotFound
		}

		workers, err := tx.Workers()
		if err != nil {
			return err
		}
		delete(workers, accountID)
		if err := tx.SetWorkers(workers); err != nil {
			return err
		}

		jobs, err := tx.Jobs()
		if err != nil {
			return err
		}
		keptJobs := jobs[:0]
		for _, j := range jobs {
			if j.CustomerID != accountID {
				keptJobs = append(keptJobs, j)
			}
		}
		if err := tx.SetJobs(keptJobs); err != nil {
			return err
		}

		offers, err := tx.Offers()
		if err != nil {
			return err
		}
		keptOffers := offers[:0]
		for _, o := range offers {
			if o.WorkerID != accountID {
				keptOffers = append(keptOffers, o)
			}
		}
		if err := tx.SetOffers(keptOffers); err != nil {
			return err
		}

		chats, err := tx.Chats()
		if err != nil {
			return err
		}
		keptChats := chats[:0]
		for _, c := range chats {
			if !c.HasMember(accountID) {
				keptChats = append(keptChats, c)
			}
		}
		if err := tx.SetChats(keptChats); err != nil {
			return err
		}

		messages, err := tx.Messages()
		if err != nil {
			return err
		}
		keptMessages := messages[:0]
		for _, m := range messages {
			if m.SenderID != accountID {
				keptMessages = append(keptMessages, m)
			}
		}
		if err := tx.SetMessages(keptMessages); err != nil {
			return err
		}

		sessionID, err := tx.SessionUserID()
		if err != nil {
			return err
		}
		if sessionID == accountID {
			if err := tx.ClearSession(); err != nil {
				return err
			}
		}

		// Сам аккаунт удаляется последним из мутирующих шагов.
		delete(users, accountID)
		return tx.SetUsers(users)
	})
}
