package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	appconfig "github.com/chainsight/site-api/internal/config"
	"github.com/chainsight/site-api/internal/db"
)

const confirmationSubject = "Welcome to the ChainSight Beta Waitlist!"

// SESSender sends the waitlist confirmation through Amazon SES.
type SESSender struct {
	client *ses.Client
	from   string
}

func NewSESSender(ctx context.Context, cfg *appconfig.EmailConfig) (*SESSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SESSender{
		client: ses.NewFromConfig(awsCfg),
		from:   cfg.FromAddress,
	}, nil
}

func (s *SESSender) SendWaitlistConfirmation(ctx context.Context, entry *db.WaitlistEntry) error {
	body, err := renderConfirmation(entry)
	if err != nil {
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}

	_, err = s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{entry.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(confirmationSubject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(body),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	return nil
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #1e293b;">Welcome to ChainSight!</h1>
  <p>Hi {{.Name}}!</p>
  <p>
    Thank you for joining the ChainSight Beta waitlist! We're excited to have
    you on board as an early supporter.
  </p>
  <h3>What's Next?</h3>
  <ul>
    <li>You'll be among the first to access ChainSight Beta</li>
    <li>We'll notify you as soon as early access is available</li>
    <li>Get ready to transform your risk management with AI</li>
  </ul>
  {{if .Company}}<p><strong>Company:</strong> {{.Company}}</p>{{end}}
  {{if .Region}}<p><strong>Region:</strong> {{.Region}}</p>{{end}}
  <p>
    <strong>Early Bird Bonus:</strong> 3 months free for joining before our
    official launch.
  </p>
  <p>Best regards,<br>The ChainSight Team</p>
  <p style="color: #94a3b8; font-size: 12px;">
    You received this email because you signed up for the ChainSight Beta waitlist.
  </p>
</div>
`))

func renderConfirmation(entry *db.WaitlistEntry) (string, error) {
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, entry); err != nil {
		return "", err
	}
	return buf.String(), nil
}
