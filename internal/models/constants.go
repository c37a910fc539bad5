package models

// JobStatus константы статусов заявок.
// Статусы offered и in_progress зарезервированы в словаре, но движок
// их не выставляет: заявка остаётся open до принятия предложения, а
// booked переходит сразу в complete.
const (
	JobStatusOpen       = "open"
	JobStatusOffered    = "offered"
	JobStatusBooked     = "booked"
	JobStatusInProgress = "in_progress"
	JobStatusComplete   = "complete"
	JobStatusCancelled  = "cancelled"
)

// OfferStatus константы статусов предложений. Из sent все переходы
// терминальны.
const (
	OfferStatusSent      = "sent"
	OfferStatusAccepted  = "accepted"
	OfferStatusRejected  = "rejected"
	OfferStatusWithdrawn = "withdrawn"
)

// Role константы ролей аккаунта.
const (
	RoleCustomer = "customer"
	RoleWorker   = "worker"
	RoleBoth     = "both"
)

// ValidJobStatuses список валидных статусов заявок.
var ValidJobStatuses = map[string]struct{}{
	JobStatusOpen:       {},
	JobStatusOffered:    {},
	JobStatusBooked:     {},
	JobStatusInProgress: {},
	JobStatusComplete:   {},
	JobStatusCancelled:  {},
}

// ValidOfferStatuses список валидных статусов предложений.
var ValidOfferStatuses = map[string]struct{}{
	OfferStatusSent:      {},
	OfferStatusAccepted:  {},
	OfferStatusRejected:  {},
	OfferStatusWithdrawn: {},
}

// ValidRoles список валидных ролей.
var ValidRoles = map[string]struct{}{
	RoleCustomer: {},
	RoleWorker:   {},
	RoleBoth:     {},
}
