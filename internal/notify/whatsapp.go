package notify

import (
	"context"
	"fmt"

	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/thunder-source/git-commit-tracker/internal/config"
)

const twilioBaseURL = "https://api.twilio.com"

var _ Notifier = (*WhatsAppNotifier)(nil)

// WhatsAppNotifier sends the summary as a WhatsApp message through the
// Twilio Messages API.
type WhatsAppNotifier struct {
	cli *cliex.HTTP
	cfg config.NotifierConfig
	log logze.Logger
}

// NewWhatsApp creates a Twilio-backed WhatsApp notifier. All credential
// fields must be set; use IsConfigured to decide between this and the
// no-op notifier.
func NewWhatsApp(cfg config.NotifierConfig) (*WhatsAppNotifier, error) {
	if !IsConfigured(cfg) {
		return nil, errm.New("twilio credentials are not fully configured")
	}
	log := logze.With("component", "notifier", "transport", "whatsapp")

	cli, err := cliex.New(cliex.WithBaseURL(twilioBaseURL), cliex.WithLogger(log))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create Twilio client")
	}
	cli.C().SetBasicAuth(cfg.AccountSID, cfg.AuthToken)

	return &WhatsAppNotifier{
		cli: cli,
		cfg: cfg,
		log: log,
	}, nil
}

// Send posts one outbound message with the summary as its body.
func (n *WhatsAppNotifier) Send(ctx context.Context, message string) error {
	url := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", twilioBaseURL, n.cfg.AccountSID)

	resp, err := n.cli.C().R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"From": "whatsapp:" + n.cfg.FromNumber,
			"To":   "whatsapp:" + n.cfg.ToNumber,
			"Body": message,
		}).
		Post(url)
	if err != nil {
		return errm.Wrap(err, "failed to send WhatsApp message")
	}
	if resp.IsError() {
		return errm.New("twilio API returned status %d", resp.StatusCode())
	}

	n.log.Info("summary delivered", "to", n.cfg.ToNumber)
	return nil
}

// IsConfigured reports whether all transport credentials are present.
func IsConfigured(cfg config.NotifierConfig) bool {
	return cfg.AccountSID != "" && cfg.AuthToken != "" && cfg.FromNumber != "" && cfg.ToNumber != ""
}
