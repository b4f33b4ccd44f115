package commands

import (
	"strings"
	"testing"
)

func TestParse_NonSlashCommand(t *testing.T) {
	tests := []string{
		"hello world",
		"",
		"   ",
		"next",
		"goto 2",
	}

	for _, input := range tests {
		result := Parse(input)
		if result != nil {
			t.Errorf("Parse(%q) = %v, want nil", input, result)
		}
	}
}

func TestParse_Simple(t *testing.T) {
	tests := []struct {
		input    string
		wantType string
	}{
		{"/help", "help"},
		{"/HELP", "help"},
		{"  /next  ", "next"},
		{"/Prev", "prev"},
		{"/decks", "decks"},
		{"/export", "export"},
		{"/booking", "booking"},
		{"/demo", "booking"},
		{"/next extra args ignored", "next"},
	}

	for _, test := range tests {
		result := Parse(test.input)
		if result == nil {
			t.Errorf("Parse(%q) = nil, want %s", test.input, test.wantType)
			continue
		}
		if result.Type() != test.wantType {
			t.Errorf("Parse(%q).Type() = %q, want %q", test.input, result.Type(), test.wantType)
		}
	}
}

func TestParse_GoTo(t *testing.T) {
	tests := []struct {
		input     string
		wantIndex int
	}{
		{"/goto 1", 0},
		{"/goto 3", 2},
		{"/GOTO 12", 11},
	}

	for _, test := range tests {
		result := Parse(test.input)
		cmd, ok := result.(GoTo)
		if !ok {
			t.Errorf("Parse(%q) = %T, want GoTo", test.input, result)
			continue
		}
		if cmd.Index != test.wantIndex {
			t.Errorf("Parse(%q).Index = %d, want %d", test.input, cmd.Index, test.wantIndex)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input       string
		wantMessage string
	}{
		{"/goto", "requires a card number"},
		{"/goto two", "not a card number"},
		{"/goto 0", "start at 1"},
		{"/goto -4", "start at 1"},
		{"/unknown", "unknown command: /unknown"},
	}

	for _, test := range tests {
		result := Parse(test.input)
		perr, ok := result.(ParseError)
		if !ok {
			t.Errorf("Parse(%q) = %T, want ParseError", test.input, result)
			continue
		}
		if !strings.Contains(perr.Message, test.wantMessage) {
			t.Errorf("Parse(%q).Message = %q, want it to contain %q", test.input, perr.Message, test.wantMessage)
		}
		if perr.Type() != "error" {
			t.Errorf("ParseError.Type() = %q", perr.Type())
		}
	}
}

func TestHelpText(t *testing.T) {
	text := HelpText()
	for _, cmd := range []string{"/help", "/next", "/prev", "/goto", "/decks", "/export", "/booking"} {
		if !strings.Contains(text, cmd) {
			t.Errorf("HelpText() missing %s", cmd)
		}
	}
}

func TestUsages_MatchParse(t *testing.T) {
	for _, u := range Usages() {
		names := append([]string{strings.Fields(u.Syntax)[0]}, u.Aliases...)
		for _, name := range names {
			input := name
			if name == "/goto" {
				input += " 1"
			}
			result := Parse(input)
			if result == nil {
				t.Errorf("Parse(%q) = nil", input)
				continue
			}
			if _, bad := result.(ParseError); bad {
				t.Errorf("documented command %q is rejected: %v", input, result)
			}
		}
	}
	if !strings.Contains(HelpText(), "/demo") {
		t.Error("HelpText() does not mention the /demo alias")
	}
}
