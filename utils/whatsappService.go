package utils

import (
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"

	"lms/config"
)

// SendWhatsappMessage relays a text message to the WhatsApp gateway. A blank
// gateway URL disables the relay (useful in dev).
func SendWhatsappMessage(mobile, message string) error {
	if config.AppConfig.WhatsappApiURL == "" {
		log.Printf("[WHATSAPP] Gateway not configured, skipping message to %s", mobile)
		return nil
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+config.AppConfig.WhatsappApiKey).
		SetBody(map[string]interface{}{
			"to":   mobile,
			"type": "text",
			"text": map[string]string{"body": message},
		}).
		Post(config.AppConfig.WhatsappApiURL)

	if err != nil {
		log.Printf("[WHATSAPP] Error sending message to %s: %v", mobile, err)
		return err
	}
	if resp.StatusCode() >= 400 {
		log.Printf("[WHATSAPP] Gateway returned %d for %s: %s", resp.StatusCode(), mobile, resp.String())
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode())
	}
	return nil
}
