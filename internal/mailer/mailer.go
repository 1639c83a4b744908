// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mailer sends lead notification emails with the generated
// offer document attached.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/olegiv/pvquote-go/internal/config"
	"github.com/olegiv/pvquote-go/internal/model"
)

// Mailer delivers notification messages over SMTP.
type Mailer struct {
	client    *mail.Client
	from      string
	recipient string
}

// New creates a mailer from the mail section of the configuration.
func New(cfg *config.Config) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.MailPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.MailUsername),
		mail.WithPassword(cfg.MailPassword),
		mail.WithTimeout(cfg.MailTimeout),
	}
	if cfg.MailUseTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(cfg.MailServer, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating mail client: %w", err)
	}
	return &Mailer{
		client:    client,
		from:      cfg.MailUsername,
		recipient: cfg.RecipientEmail,
	}, nil
}

// SendAdminNotification mails the configured recipient a summary of the
// captured lead with the offer PDF attached.
func (m *Mailer) SendAdminNotification(ctx context.Context, lead model.Lead, pdfPath string) error {
	msg, err := m.buildAdminMessage(lead, pdfPath)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending admin notification: %w", err)
	}
	return nil
}

// SendCustomerConfirmation mails the submitter a thank-you message with
// the offer PDF attached.
func (m *Mailer) SendCustomerConfirmation(ctx context.Context, lead model.Lead, pdfPath string) error {
	msg, err := m.buildCustomerMessage(lead, pdfPath)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending customer confirmation: %w", err)
	}
	return nil
}

func (m *Mailer) buildAdminMessage(lead model.Lead, pdfPath string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("setting admin message sender: %w", err)
	}
	if err := msg.To(m.recipient); err != nil {
		return nil, fmt.Errorf("setting admin message recipient: %w", err)
	}
	msg.Subject(fmt.Sprintf("Neue PV-Anfrage von %s", lead.Email))
	msg.SetBodyString(mail.TypeTextPlain, leadSummary(lead))
	msg.AttachFile(pdfPath)
	return msg, nil
}

func (m *Mailer) buildCustomerMessage(lead model.Lead, pdfPath string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("setting customer message sender: %w", err)
	}
	if err := msg.To(lead.Email); err != nil {
		return nil, fmt.Errorf("setting customer message recipient: %w", err)
	}
	msg.Subject("Ihr persönliches PV-Angebot")
	msg.SetBodyString(mail.TypeTextPlain,
		"Guten Tag,\n\n"+
			"vielen Dank für Ihre Anfrage. Im Anhang finden Sie Ihr persönliches PV-Angebot.\n\n"+
			"Wir melden uns in Kürze bei Ihnen.\n\n"+
			"Mit freundlichen Grüßen\nIhr PV-Team")
	msg.AttachFile(pdfPath)
	return msg, nil
}

// leadSummary renders the lead as one label/value line per form field.
func leadSummary(lead model.Lead) string {
	var b strings.Builder
	b.WriteString("Eine neue Anfrage ist eingegangen:\n\n")
	for _, f := range model.LeadFields {
		fmt.Fprintf(&b, "%s: %s\n", f.Label, lead.FieldValue(f.Name))
	}
	return b.String()
}
