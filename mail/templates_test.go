package mail

import (
	"strings"
	"testing"
)

func TestConfirmTemplate(t *testing.T) {
	e, err := ConfirmTemplate(TemplateData{
		BaseURL:  "https://example.com",
		Username: "a@x.com",
		Check:    "check-code",
	})
	if err != nil {
		t.Fatal(err)
	}

	if e.Subject == "" {
		t.Error("expected a subject")
	}

	if !strings.Contains(e.HTML, "https://example.com/confirm/check-code") {
		t.Errorf("expected confirmation link in body, got: %s", e.HTML)
	}

	if !strings.Contains(e.HTML, "a@x.com") {
		t.Error("expected username in body")
	}
}

func TestRecoverTemplate(t *testing.T) {
	e, err := RecoverTemplate(TemplateData{
		BaseURL:  "https://example.com",
		Username: "a@x.com",
		Check:    "check-code",
	})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(e.HTML, "https://example.com/recover/check-code") {
		t.Errorf("expected recovery link in body, got: %s", e.HTML)
	}
}

func TestTemplateEscaping(t *testing.T) {
	e, err := ConfirmTemplate(TemplateData{
		BaseURL:  "https://example.com",
		Username: "<script>alert(1)</script>",
		Check:    "check-code",
	})
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(e.HTML, "<script>") {
		t.Error("expected username to be escaped")
	}
}

func TestMessageFormat(t *testing.T) {
	msg := string(message("no-reply@example.com", "a@x.com", Email{
		Subject: "Hello",
		HTML:    "<p>Hi</p>",
	}))

	if !strings.Contains(msg, "Subject: Hello\r\n") {
		t.Error("expected subject header")
	}

	if !strings.HasSuffix(msg, "\r\n\r\n<p>Hi</p>") {
		t.Error("expected body after blank line")
	}
}
