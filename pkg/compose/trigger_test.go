package compose

import (
	"errors"
	"testing"
)

func TestLocate(t *testing.T) {
	testCases := []struct {
		head    string
		trigger Trigger
		index   int
		ok      bool
	}{
		{"hello @al", Mention, 6, true},
		{"see #general and :smi", Emoji, 17, true},
		{"a:b#c@d", Mention, 5, true},
		{"@d#c:b", Emoji, 4, true},
		{"ñ#x", Stream, 1, true},
		{"nothing here", 0, -1, false},
		{"", 0, -1, false},
	}

	for _, tc := range testCases {
		trigger, index, ok := Locate(tc.head)
		if trigger != tc.trigger || index != tc.index || ok != tc.ok {
			t.Errorf("Locate(%q) = (%q, %d, %v), expected (%q, %d, %v)",
				tc.head, trigger, index, ok, tc.trigger, tc.index, tc.ok)
		}
	}
}

func TestTriggerDomain(t *testing.T) {
	expected := map[Trigger]string{Emoji: "emoji", Stream: "stream", Mention: "mention", '!': ""}
	for trigger, domain := range expected {
		if got := trigger.Domain(); got != domain {
			t.Errorf("%q.Domain() = %q, expected %q", trigger, got, domain)
		}
	}
}

func TestParseTrigger(t *testing.T) {
	for _, s := range []string{":", "#", "@"} {
		trigger, ok := ParseTrigger(s)
		if !ok || trigger.String() != s {
			t.Errorf("ParseTrigger(%q) = %q, %v", s, trigger, ok)
		}
	}
	for _, s := range []string{"", "!", "@@"} {
		if _, ok := ParseTrigger(s); ok {
			t.Errorf("ParseTrigger(%q) should fail", s)
		}
	}
}

func TestActiveToken(t *testing.T) {
	testCases := []struct {
		text  string
		sel   Selection
		token Token
		ok    bool
	}{
		{"hello @al", Cursor(9), Token{Trigger: Mention, Query: "al"}, true},
		{"hey @_sec", Cursor(9), Token{Trigger: Mention, Query: "sec", Silent: true}, true},
		{"I feel :smi", Cursor(11), Token{Trigger: Emoji, Query: "smi"}, true},
		{"hi @al bob", Cursor(6), Token{Trigger: Mention, Query: "al"}, true},
		{"#", Cursor(1), Token{Trigger: Stream}, true},
		{"hello", Cursor(5), Token{}, false},
	}

	for _, tc := range testCases {
		token, ok := ActiveToken(tc.text, tc.sel)
		if token != tc.token || ok != tc.ok {
			t.Errorf("ActiveToken(%q, %+v) = %+v, %v, expected %+v, %v",
				tc.text, tc.sel, token, ok, tc.token, tc.ok)
		}
	}
}

func TestSelectionValidate(t *testing.T) {
	if err := Cursor(3).Validate("héy"); err != nil {
		t.Errorf("cursor at end of multibyte text: %v", err)
	}
	if err := (Selection{Start: 0, End: 4}).Validate("héy"); !errors.Is(err, ErrSelectionOutOfRange) {
		t.Errorf("expected ErrSelectionOutOfRange, got %v", err)
	}
	if err := (Selection{Start: -1, End: 0}).Validate("x"); !errors.Is(err, ErrSelectionOutOfRange) {
		t.Errorf("expected ErrSelectionOutOfRange, got %v", err)
	}
	if err := (Selection{Start: 2, End: 1}).Validate("xyz"); !errors.Is(err, ErrSelectionInverted) {
		t.Errorf("expected ErrSelectionInverted, got %v", err)
	}
}
