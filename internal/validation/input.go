package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinDisplayNameLength = 2
	MaxDisplayNameLength = 100
	MinJobTitleLength    = 3
	MaxJobTitleLength    = 200
	MaxJobDescriptionLength = 5000
	MaxOfferMessageLength   = 2000
	MaxETALength            = 200
	MaxBioLength            = 1000
	MaxMessageLength        = 1000
	MaxBudget               = 100000000.0 // 100 миллионов
)

var emailLocalRegex = regexp.MustCompile(`^[a-z0-9._+-]+$`)
var emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)

// NormalizeEmail приводит email к каноническому виду: trim + lowercase.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail проверяет формат email (после нормализации).
func ValidateEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}
	if !emailLocalRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}
	if !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateLength проверяет длину строки в рунах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateDisplayName проверяет отображаемое имя.
func ValidateDisplayName(displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return fmt.Errorf("отображаемое имя обязательно")
	}
	return ValidateLength("отображаемое имя", displayName, MinDisplayNameLength, MaxDisplayNameLength)
}

// ValidateJobTitle проверяет заголовок заявки.
func ValidateJobTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("заголовок заявки обязателен")
	}
	return ValidateLength("заголовок заявки", title, MinJobTitleLength, MaxJobTitleLength)
}

// ValidateJobDescription проверяет описание заявки.
func ValidateJobDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("описание заявки обязательно")
	}
	return ValidateLength("описание заявки", description, 0, MaxJobDescriptionLength)
}

// ValidateBudget проверяет бюджетную вилку: обе границы > 0, min <= max.
func ValidateBudget(budgetMin, budgetMax float64) error {
	if budgetMin <= 0 || budgetMax <= 0 {
		return fmt.Errorf("бюджет должен быть больше нуля")
	}
	if budgetMin > MaxBudget || budgetMax > MaxBudget {
		return fmt.Errorf("бюджет не может превышать %.0f", MaxBudget)
	}
	if budgetMin > budgetMax {
		return fmt.Errorf("минимальный бюджет не может быть больше максимального")
	}
	return nil
}

// ValidatePrice проверяет цену предложения.
func ValidatePrice(price float64) error {
	if price <= 0 {
		return fmt.Errorf("цена должна быть больше нуля")
	}
	if price > MaxBudget {
		return fmt.Errorf("цена не может превышать %.0f", MaxBudget)
	}
	return nil
}

// ValidateETA проверяет текст срока выполнения.
func ValidateETA(eta string) error {
	eta = strings.TrimSpace(eta)
	if eta == "" {
		return fmt.Errorf("срок выполнения обязателен")
	}
	return ValidateLength("срок выполнения", eta, 0, MaxETALength)
}

// ValidateServiceRadius проверяет радиус обслуживания исполнителя.
// Радиус хранится, но движком не применяется.
func ValidateServiceRadius(radius float64) error {
	if radius <= 0 {
		return fmt.Errorf("радиус обслуживания должен быть больше нуля")
	}
	return nil
}

// ValidateMessageContent проверяет текст сообщения чата.
func ValidateMessageContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("сообщение не может быть пустым")
	}
	return ValidateLength("сообщение", content, 0, MaxMessageLength)
}
