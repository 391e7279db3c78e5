// Package milestones e-mails writers when their streak reaches a milestone.
package milestones

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/mailgun/mailgun-go/v3"

	"github.com/storyverse/server/logging"
)

var ErrNoEmail = errors.New("user has no e-mail address")

// Sender is the part of mailgun.Mailgun used here.
type Sender interface {
	NewMessage(from, subject, text string, to ...string) *mailgun.Message
	Send(ctx context.Context, m *mailgun.Message) (string, string, error)
}

// UserDirectory resolves a Firebase UID to its account. *auth.Client
// satisfies it.
type UserDirectory interface {
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
}

type MailgunNotifier struct {
	mg       Sender
	users    UserDirectory
	sender   string
	template string
	log      logging.Logger
}

func NewMailgunNotifier(mg Sender, users UserDirectory, sender, template string, log logging.Logger) *MailgunNotifier {
	return &MailgunNotifier{mg: mg, users: users, sender: sender, template: template, log: log}
}

// NewMailgun builds a notifier backed by the Mailgun API.
func NewMailgun(domain, apiKey string, users UserDirectory, sender, template string, log logging.Logger) *MailgunNotifier {
	return NewMailgunNotifier(mailgun.NewMailgun(domain, apiKey), users, sender, template, log)
}

func (n *MailgunNotifier) StreakMilestone(ctx context.Context, userID string, streak int) error {
	user, err := n.users.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user %s: %w", userID, err)
	}
	if user.UserInfo == nil || user.Email == "" {
		return fmt.Errorf("%w: %s", ErrNoEmail, userID)
	}

	subject, body := Message(user.DisplayName, streak)
	message := n.mg.NewMessage(n.sender, subject, body, user.Email)
	if n.template != "" {
		message.SetTemplate(n.template)
		message.AddTemplateVariable("content", body)
		message.AddTemplateVariable("streak", streak)
	}

	_, id, err := n.mg.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("send milestone mail to %s: %w", userID, err)
	}

	n.log.Debug(ctx, "milestone mail queued", "user", userID, "streak", streak, "id", id)
	return nil
}

// Message returns the subject and plain-text body for a streak milestone.
func Message(name string, streak int) (string, string) {
	if name == "" {
		name = "there"
	}
	subject := fmt.Sprintf("%d days in a row!", streak)
	body := fmt.Sprintf("Hey %s!\n\nYou have written for %d days in a row. Every word counts, keep the streak going.\n\nTeam Storyverse", name, streak)
	return subject, body
}
