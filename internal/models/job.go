package models

import "time"

// Job описывает заявку заказчика на услугу.
// customerName — снимок имени на момент создания, он не обновляется
// при последующем переименовании аккаунта.
type Job struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName"`
	CategoryID   string    `json:"categoryId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	BudgetMin    float64   `json:"budgetMin"`
	BudgetMax    float64   `json:"budgetMax"`
	Photos       []string  `json:"photos"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Offer — предложение исполнителя по конкретной заявке.
// workerName и customerId денормализованы при создании.
type Offer struct {
	ID         string    `json:"id"`
	JobID      string    `json:"jobId"`
	WorkerID   string    `json:"workerId"`
	WorkerName string    `json:"workerName"`
	CustomerID string    `json:"customerId"`
	Price      float64   `json:"price"`
	ETAText    string    `json:"etaText"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}
