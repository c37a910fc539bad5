package repository

import (
	"github.com/ignatzorin/workova-backend/internal/models"
)

// Типизированные аксессоры коллекций. Пользователи и анкеты хранятся
// как map по id, остальные коллекции — массивы в порядке добавления.

// Users возвращает всех пользователей.
func (t *Tx) Users() (map[string]models.User, error) {
	users := make(map[string]models.User)
	if err := t.get(CollectionUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetUsers заменяет коллекцию пользователей.
func (t *Tx) SetUsers(users map[string]models.User) error {
	return t.put(CollectionUsers, users)
}

// Workers возвращает все анкеты исполнителей.
func (t *Tx) Workers() (map[string]models.WorkerProfile, error) {
	workers := make(map[string]models.WorkerProfile)
	if err := t.get(CollectionWorkers, &workers); err != nil {
		return nil, err
	}
	return workers, nil
}

// SetWorkers заменяет коллекцию анкет.
func (t *Tx) SetWorkers(workers map[string]models.WorkerProfile) error {
	return t.put(CollectionWorkers, workers)
}

// Jobs возвращает все заявки.
func (t *Tx) Jobs() ([]models.Job, error) {
	var jobs []models.Job
	if err := t.get(CollectionJobs, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// SetJobs заменяет коллекцию заявок.
func (t *Tx) SetJobs(jobs []models.Job) error {
	return t.put(CollectionJobs, jobs)
}

// Offers возвращает все предложения.
func (t *Tx) Offers() ([]models.Offer, error) {
	var offers []models.Offer
	if err := t.get(CollectionOffers, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// SetOffers заменяет коллекцию предложений.
func (t *Tx) SetOffers(offers []models.Offer) error {
	return t.put(CollectionOffers, offers)
}

// Chats возвращает все чаты.
func (t *Tx) Chats() ([]models.Chat, error) {
	var chats []models.Chat
	if err := t.get(CollectionChats, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// SetChats заменяет коллекцию чатов.
func (t *Tx) SetChats(chats []models.Chat) error {
	return t.put(CollectionChats, chats)
}

// Messages возвращает все сообщения.
func (t *Tx) Messages() ([]models.Message, error) {
	var messages []models.Message
	if err := t.get(CollectionMessages, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SetMessages заменяет коллекцию сообщений.
func (t *Tx) SetMessages(messages []models.Message) error {
	return t.put(CollectionMessages, messages)
}

// Reports возвращает все жалобы.
func (t *Tx) Reports() ([]models.Report, error) {
	var reports []models.Report
	if err := t.get(CollectionReports, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// SetReports заменяет коллекцию жалоб.
func (t *Tx) SetReports(reports []models.Report) error {
	return t.put(CollectionReports, reports)
}

// SessionUserID возвращает id пользователя текущей сессии либо пустую
// строку, если сессии нет.
func (t *Tx) SessionUserID() (string, error) {
	var id string
	if err := t.get(CollectionSession, &id); err != nil {
		return "", err
	}
	return id, nil
}

// SetSessionUserID устанавливает текущую сессию.
func (t *Tx) SetSessionUserID(id string) error {
	return t.put(CollectionSession, id)
}

// ClearSession завершает текущую сессию.
func (t *Tx) ClearSession() error {
	return t.remove(CollectionSession)
}
