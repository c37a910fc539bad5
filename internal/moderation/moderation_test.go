package moderation

import "testing"

func TestCheck(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		clean bool
	}{
		{"обычный текст", "Fix leaky faucet in the kitchen", true},
		{"пустой текст", "", true},
		{"скам-фраза", "buy crypto now!!!", false},
		{"скам-фраза в середине", "Great deal, earn money fast with us", false},
		{"нецензурная лексика", "this is shit", false},
		{"подстрока внутри слова не считается", "I need a shiitake mushroom delivery", true},
		{"регистр не важен", "BUY CRYPTO today", false},
		{"две ссылки допустимы", "see https://a.example and https://b.example", true},
		{"три ссылки отклоняются", "https://a.example https://b.example https://c.example", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Check(tc.text)
			if res.IsClean != tc.clean {
				t.Fatalf("Check(%q): IsClean = %v, ожидалось %v (reason: %q)", tc.text, res.IsClean, tc.clean, res.Reason)
			}
			if !res.IsClean && res.Reason == "" {
				t.Fatalf("Check(%q): отказ без причины", tc.text)
			}
			if res.IsClean && res.Reason != "" {
				t.Fatalf("Check(%q): чистый текст с причиной %q", tc.text, res.Reason)
			}
		})
	}
}
