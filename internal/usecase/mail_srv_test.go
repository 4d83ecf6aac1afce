package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"biz-directory/internal/dto/request"
	"biz-directory/pkg/apperror"
)

func TestSendContactForwardsAndConfirms(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Mail.SendContact(context.Background(), &request.ContactRequest{
		Name:    "Jane",
		Email:   "Jane@Example.com",
		Message: "<b>hi</b>",
	})
	if err != nil {
		t.Fatalf("send contact: %v", err)
	}
	if resp.ContactName != "Jane" || resp.Status != "sent" {
		t.Fatalf("unexpected response %+v", resp)
	}
	f.svc.Mail.Wait()

	sent := f.mail.messages()
	if len(sent) != 2 {
		t.Fatalf("expected forward and confirmation, got %d", len(sent))
	}
	forward := sent[0]
	if forward.To != "ops@deals.test" || forward.ReplyTo != "jane@example.com" {
		t.Fatalf("unexpected forward %+v", forward)
	}
	if strings.Contains(forward.HTMLBody, "<b>hi</b>") {
		t.Fatal("message body must be escaped")
	}
	if sent[1].To != "jane@example.com" {
		t.Fatalf("unexpected confirmation recipient %s", sent[1].To)
	}
}

func TestSendContactFailureIsUpstream(t *testing.T) {
	f := newFixture(t)
	f.mail.err = errors.New("smtp down")

	_, err := f.svc.Mail.SendContact(context.Background(), &request.ContactRequest{
		Name:    "Jane",
		Email:   "jane@example.com",
		Message: "hello",
	})
	expectKind(t, err, apperror.KindUpstream)
}

func TestSendContactValidates(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Mail.SendContact(context.Background(), &request.ContactRequest{Name: "Jane", Email: "nope"})
	expectKind(t, err, apperror.KindValidation)
}
