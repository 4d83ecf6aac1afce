package mailer

import (
	"context"
	"strings"
	"testing"

	"biz-directory/pkg/utils"

	"go.uber.org/zap"
)

func TestRenderContactEscapesInput(t *testing.T) {
	body, err := RenderContact(ContactData{
		Name:    "Eve",
		Email:   "eve@example.com",
		Message: "<script>alert(1)</script>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(body, "<script>") {
		t.Fatalf("expected message to be escaped: %s", body)
	}
	if !strings.Contains(body, "eve@example.com") {
		t.Fatalf("expected sender email in body")
	}
}

func TestRenderWelcomeVariesByRole(t *testing.T) {
	business, err := RenderWelcome(WelcomeData{Username: "shop", Business: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	customer, _ := RenderWelcome(WelcomeData{Username: "joe"})
	if !strings.Contains(business, "publishing offers") || strings.Contains(customer, "publishing offers") {
		t.Fatalf("unexpected welcome bodies:\n%s\n%s", business, customer)
	}
}

func TestNewWithoutHostDropsMail(t *testing.T) {
	n := New(utils.EmailConfig{}, zap.NewNop())
	if err := n.Send(context.Background(), Message{To: "a@b.co", Subject: "hi"}); err != nil {
		t.Fatalf("expected log notifier to accept mail, got %v", err)
	}
}
