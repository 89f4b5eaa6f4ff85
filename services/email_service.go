package services

import (
	"car_configurator_server/structs"
	"car_configurator_server/structs/tables"
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	client     *resend.Client
	clientOnce = sync.Once{}
)

// EmailService sends transactional mail through Resend. When email is disabled
// or no API key is configured every send is a logged no-op.
type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	es := &EmailService{logger: logger, cfg: cfg}
	if cfg.Email.Enabled && cfg.Email.ApiKey != "" {
		es.client = getEmailClient(cfg.Email.ApiKey)
	}
	return es
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		client = resend.NewClient(apiKey)
	})
	return client
}

func (es *EmailService) Enabled() bool {
	return es.client != nil
}

func (es *EmailService) SendEmail(ctx context.Context, to []string, subject string, body string) error {
	if !es.Enabled() {
		es.logger.Debug("Email disabled, skipping send", gecho.Field("subject", subject))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

const emailStyle = `
	body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
	.container { max-width: 600px; margin: 0 auto; padding: 20px; }
	.header { background-color: #1f2937; color: white; padding: 20px; text-align: center; }
	.content { padding: 20px; background-color: #f9f9f9; }
	.quote-details { background-color: white; padding: 15px; margin: 15px 0; border-radius: 5px; }
	.button { display: inline-block; padding: 15px 30px; background-color: #2563eb; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
	.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
	ul { list-style-type: none; padding: 0; }
	li { padding: 5px 0; border-bottom: 1px solid #eee; }
`

// SendQuoteConfirmation mails the owner a summary of a saved quote
func (es *EmailService) SendQuoteConfirmation(ctx context.Context, user *tables.User, quote *tables.Quote) error {
	var items strings.Builder
	fmt.Fprintf(&items, "<li>Color: %s - %s</li>", html.EscapeString(quote.ColorName), formatPrice(quote.ColorPrice))
	for _, o := range quote.Options {
		fmt.Fprintf(&items, "<li>%s - %s</li>", html.EscapeString(o.OptionName), formatPrice(o.OptionPrice))
	}
	if quote.DiscountAmount > 0 {
		fmt.Fprintf(&items, "<li>Discount %s: -%s</li>", html.EscapeString(quote.DiscountName), formatPrice(quote.DiscountAmount))
	}
	if quote.DeliveryFee > 0 {
		fmt.Fprintf(&items, "<li>Delivery %s: %s</li>", html.EscapeString(quote.DeliveryRegion), formatPrice(quote.DeliveryFee))
	}

	link := fmt.Sprintf("%s/quotes/%s", es.cfg.Server.PublicURL, quote.ID)

	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>%s</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Your quote %s</h1>
				</div>
				<div class="content">
					<p>Hi %s,</p>
					<p>Thanks for configuring your car with us. Here is what you picked:</p>
					<div class="quote-details">
						<ul>%s</ul>
						<p>Subtotal: <strong>%s</strong></p>
						<p>Total: <strong>%s</strong></p>
					</div>
					<p style="text-align: center;">
						<a href="%s" class="button">View quote</a>
					</p>
					<p>Questions? Reach us at %s.</p>
				</div>
				<div class="footer">
					<p>%s</p>
				</div>
			</div>
		</body>
		</html>
	`, emailStyle, quote.Reference, html.EscapeString(user.Name), items.String(),
		formatPrice(quote.Subtotal), formatPrice(quote.Total), link, es.cfg.Email.SupportEmail, es.cfg.Server.AppName)

	subject := fmt.Sprintf("Your quote %s", quote.Reference)
	return es.SendEmail(ctx, []string{user.Email}, subject, emailBody)
}

// SendWelcome greets a newly registered user
func (es *EmailService) SendWelcome(ctx context.Context, user *tables.User) error {
	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>%s</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Welcome to %s</h1>
				</div>
				<div class="content">
					<p>Hi %s,</p>
					<p>Your account is ready. Quotes you save while signed in are kept under My quotes.</p>
					<p style="text-align: center;">
						<a href="%s" class="button">Start configuring</a>
					</p>
				</div>
			</div>
		</body>
		</html>
	`, emailStyle, es.cfg.Server.AppName, html.EscapeString(user.Name), es.cfg.Server.PublicURL)

	return es.SendEmail(ctx, []string{user.Email}, "Welcome to "+es.cfg.Server.AppName, emailBody)
}

// formatPrice renders whole currency units with thousands separators, e.g. 32,500,000.
func formatPrice(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + b.String()
}
