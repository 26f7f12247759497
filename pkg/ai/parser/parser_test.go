package parser

import (
	"errors"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantKey string
		wantVal interface{}
		wantErr bool
	}{
		{
			name:    "clean JSON",
			raw:     `{"decision": "refund_approved"}`,
			wantKey: "decision",
			wantVal: "refund_approved",
		},
		{
			name:    "markdown fenced",
			raw:     "```json\n{\"fraud_flag\": true}\n```",
			wantKey: "fraud_flag",
			wantVal: true,
		},
		{
			name:    "prose wrapped",
			raw:     "Sure! Here is the analysis you asked for:\n{\"risk\": \"low\"}\nLet me know if you need anything else.",
			wantKey: "risk",
			wantVal: "low",
		},
		{
			name:    "multiline object",
			raw:     "Result:\n{\n  \"reason\": \"damaged item\",\n  \"nested\": {\"ok\": true}\n}",
			wantKey: "reason",
			wantVal: "damaged item",
		},
		{
			name:    "leading whitespace",
			raw:     "   \n\t{\"summary\": \"ok\"}",
			wantKey: "summary",
			wantVal: "ok",
		},
		{
			name:    "no JSON at all",
			raw:     "I'm sorry, I can't help with that.",
			wantErr: true,
		},
		{
			name:    "braces but invalid JSON",
			raw:     "{this is not json}",
			wantErr: true,
		},
		{
			name:    "empty string",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Extract(tt.raw)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Extract(%q) expected error, got %v", tt.raw, result)
				}
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("expected *ParseError, got %T", err)
				}
				if parseErr.Raw != tt.raw {
					t.Errorf("ParseError.Raw = %q, want %q", parseErr.Raw, tt.raw)
				}
				return
			}

			if err != nil {
				t.Fatalf("Extract(%q) unexpected error: %v", tt.raw, err)
			}
			if got := result[tt.wantKey]; got != tt.wantVal {
				t.Errorf("result[%q] = %v, want %v", tt.wantKey, got, tt.wantVal)
			}
		})
	}
}

func TestExtractInto(t *testing.T) {
	type decision struct {
		Decision string `json:"decision"`
		Reason   string `json:"reason"`
	}

	var d decision
	raw := "Here you go:\n```json\n{\"decision\": \"deny\", \"reason\": \"no evidence\"}\n```"
	if err := ExtractInto(raw, &d); err != nil {
		t.Fatalf("ExtractInto failed: %v", err)
	}
	if d.Decision != "deny" || d.Reason != "no evidence" {
		t.Errorf("got %+v", d)
	}
}

func TestParseErrorTruncatesLongRaw(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}

	_, err := Extract(string(long))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Error()) > 300 {
		t.Errorf("error message not truncated: %d chars", len(err.Error()))
	}
}
