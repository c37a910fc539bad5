package validation

import (
	"strings"
	"testing"
)

func TestNormalizeAndValidateEmail(t *testing.T) {
	if got := NormalizeEmail("  Ann@Example.COM "); got != "ann@example.com" {
		t.Fatalf("NormalizeEmail: %q", got)
	}

	valid := []string{"ann@example.com", "a.b+tag@sub.example.org"}
	for _, e := range valid {
		if err := ValidateEmail(e); err != nil {
			t.Fatalf("ValidateEmail(%q): %v", e, err)
		}
	}

	invalid := []string{"", "plain", "two@@example.com", "sp ace@example.com", "x@nodot"}
	for _, e := range invalid {
		if err := ValidateEmail(e); err == nil {
			t.Fatalf("ValidateEmail(%q) должен отклоняться", e)
		}
	}
}

func TestValidateBudget(t *testing.T) {
	if err := ValidateBudget(50, 120); err != nil {
		t.Fatalf("валидная вилка: %v", err)
	}
	if err := ValidateBudget(0, 120); err == nil {
		t.Fatal("нулевой минимум должен отклоняться")
	}
	if err := ValidateBudget(120, 50); err == nil {
		t.Fatal("перевёрнутая вилка должна отклоняться")
	}
	if err := ValidateBudget(1, MaxBudget+1); err == nil {
		t.Fatal("превышение потолка должно отклоняться")
	}
}

func TestValidateLengthCountsRunes(t *testing.T) {
	text := strings.Repeat("я", 1000)
	if err := ValidateLength("сообщение", text, 0, MaxMessageLength); err != nil {
		t.Fatalf("ровно 1000 рун должны проходить: %v", err)
	}
	if err := ValidateLength("сообщение", text+"я", 0, MaxMessageLength); err == nil {
		t.Fatal("1001 руна должна отклоняться")
	}
}
