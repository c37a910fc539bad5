package models

import "time"

const (
	ReportTargetJob     = "job"
	ReportTargetUser    = "user"
	ReportTargetOffer   = "offer"
	ReportTargetMessage = "message"
)

// Report — жалоба пользователя. Запись только добавляется и никогда
// не изменяется.
type Report struct {
	ID         string    `json:"id"`
	ReporterID string    `json:"reporterId"`
	TargetType string    `json:"targetType"`
	TargetID   string    `json:"targetId"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ValidReportTargets список допустимых типов целей жалобы.
var ValidReportTargets = map[string]struct{}{
	ReportTargetJob:     {},
	ReportTargetUser:    {},
	ReportTargetOffer:   {},
	ReportTargetMessage: {},
}
