package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var (
	sesClient *ses.Client
	sesOnce   sync.Once
)

func getSESClient() *ses.Client {
	sesOnce.Do(func() {
		region := os.Getenv("AWS_REGION")
		if region == "" {
			region = "ap-south-1"
		}
		cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
		if err != nil {
			log.Printf("AWS config load failed, mail disabled: %v", err)
			return
		}
		sesClient = ses.NewFromConfig(cfg)
	})
	return sesClient
}

// generic SES sender
func sendEmail(to string, subject string, body string) error {
	client := getSESClient()
	if client == nil {
		return fmt.Errorf("ses client unavailable")
	}
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err := client.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// SendUrgentAdvisoryEmail mails a digest of the urgent advisories
// generated today for one crop.
func SendUrgentAdvisoryEmail(to string, cropName string, messages []string) error {
	subject := fmt.Sprintf("Urgent advisory for %s", cropName)
	body := fmt.Sprintf(
		"Your crop %s needs attention today:\n\n- %s\n\nOpen the app for the full advisory list.",
		cropName, strings.Join(messages, "\n- "),
	)
	return sendEmail(to, subject, body)
}
