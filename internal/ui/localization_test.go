package ui

import (
	"testing"
)

func TestNewLocalization(t *testing.T) {
	l := NewLocalization()

	if l.GetCurrentLanguage() != "en" {
		t.Errorf("Expected default language en, got %s", l.GetCurrentLanguage())
	}
	if got := l.GetText(KeyStartMerge); got != "Start Merge" {
		t.Errorf("Expected 'Start Merge', got %q", got)
	}
}

func TestSetLanguage(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage("ru")
	if l.GetCurrentLanguage() != "ru" {
		t.Errorf("Expected ru, got %s", l.GetCurrentLanguage())
	}

	// Unknown languages are ignored
	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "ru" {
		t.Errorf("Expected language to stay ru, got %s", l.GetCurrentLanguage())
	}
}

func TestSetLanguageSystem(t *testing.T) {
	t.Setenv("LC_ALL", "pt_BR.UTF-8")

	l := NewLocalization()
	l.SetLanguage("system")
	if l.GetCurrentLanguage() != "pt" {
		t.Errorf("Expected pt from system locale, got %s", l.GetCurrentLanguage())
	}
}

func TestGetTextFallbacks(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage("pt")

	// Missing translation falls back to English
	delete(l.texts["pt"], KeyBrowse)
	if got := l.GetText(KeyBrowse); got != "Browse" {
		t.Errorf("Expected English fallback 'Browse', got %q", got)
	}

	// Unknown key returns the key itself
	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("Expected key fallback, got %q", got)
	}
}

func TestAllLanguagesHaveEveryKey(t *testing.T) {
	l := NewLocalization()
	english := l.texts["en"]

	for code := range l.GetAvailableLanguages() {
		texts, ok := l.texts[code]
		if !ok {
			t.Errorf("Missing translations for %s", code)
			continue
		}
		for key := range english {
			if _, found := texts[key]; !found {
				t.Errorf("Language %s is missing key %s", code, key)
			}
		}
	}
}

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		locale   string
		expected string
	}{
		{"ru_RU.UTF-8", "ru"},
		{"pt_BR.UTF-8", "pt"},
		{"pt-PT", "pt"},
		{"en_US.UTF-8", "en"},
		{"de_DE.UTF-8", "en"},
		{"C", "en"},
		{"POSIX", "en"},
		{"", "en"},
		{"not a locale!", "en"},
		{"ru_RU@euro", "ru"},
	}

	for _, test := range tests {
		if got := MatchLanguage(test.locale); got != test.expected {
			t.Errorf("MatchLanguage(%q) = %s, expected %s", test.locale, got, test.expected)
		}
	}
}

func TestSystemLanguagePrecedence(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "ru_RU.UTF-8")
	t.Setenv("LANG", "pt_BR.UTF-8")

	if got := SystemLanguage(); got != "ru" {
		t.Errorf("Expected LC_MESSAGES to win, got %s", got)
	}
}
