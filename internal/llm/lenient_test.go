package llm

import (
	"errors"
	"testing"
)

func TestExtractJSONObjectPlain(t *testing.T) {
	got, err := ExtractJSONObject(`{"company_name": "Acme"}`)
	if err != nil {
		t.Fatalf("ExtractJSONObject: %v", err)
	}
	if string(got) != `{"company_name": "Acme"}` {
		t.Errorf("got %s", got)
	}
}

func TestExtractJSONObjectFenced(t *testing.T) {
	text := "Here is the result:\n```json\n{\"role_name\": \"Engineer\"}\n```\nDone."
	got, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("ExtractJSONObject: %v", err)
	}
	if string(got) != `{"role_name": "Engineer"}` {
		t.Errorf("got %s", got)
	}
}

func TestExtractJSONObjectEmbeddedInProse(t *testing.T) {
	text := `Based on the posting, the fields are {"company_name": "Acme", "remote": "yes"} as requested.`
	got, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("ExtractJSONObject: %v", err)
	}
	if string(got) != `{"company_name": "Acme", "remote": "yes"}` {
		t.Errorf("got %s", got)
	}
}

func TestExtractJSONObjectPicksLargest(t *testing.T) {
	text := `{"a": 1} and then {"company_name": "Acme", "role_name": "Engineer"}`
	got, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("ExtractJSONObject: %v", err)
	}
	if string(got) != `{"company_name": "Acme", "role_name": "Engineer"}` {
		t.Errorf("got %s", got)
	}
}

func TestExtractJSONObjectBracesInsideStrings(t *testing.T) {
	text := `prefix {"comment": "uses {braces} and a \" quote"} suffix`
	got, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("ExtractJSONObject: %v", err)
	}
	if string(got) != `{"comment": "uses {braces} and a \" quote"}` {
		t.Errorf("got %s", got)
	}
}

func TestExtractJSONObjectNoObject(t *testing.T) {
	for _, text := range []string{"", "   ", "no structure here", "{broken", "[1, 2, 3]"} {
		if _, err := ExtractJSONObject(text); !errors.Is(err, ErrNoJSONObject) {
			t.Errorf("ExtractJSONObject(%q): expected ErrNoJSONObject, got %v", text, err)
		}
	}
}
