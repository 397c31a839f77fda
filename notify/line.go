package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"stamprally-backend/models"
)

const lineAPIBaseURL = "https://api.line.me/v2/bot"

// LineClient pushes messages through the LINE Messaging API. With an empty
// channel token it becomes a no-op, so local setups work without LINE.
type LineClient struct {
	channelToken string
	liffBaseURL  string
	httpClient   *http.Client
}

func NewLineClient(channelToken, liffBaseURL string) *LineClient {
	return &LineClient{
		channelToken: channelToken,
		liffBaseURL:  liffBaseURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// StampAwarded dispatches the stamp-awarded push without blocking the
// caller. Delivery failure is logged and never reaches the award path.
func (c *LineClient) StampAwarded(userID string, stamp *models.StampMaster) {
	if c.channelToken == "" {
		log.Println("LINE channel token not configured, skipping notification")
		return
	}

	message := c.stampFlexMessage(stamp)
	go func() {
		if err := c.push(userID, message); err != nil {
			log.Printf("Failed to send stamp notification to %s: %v", userID, err)
		}
	}()
}

// EventStarted sends a plain text announcement.
func (c *LineClient) EventStarted(userID, eventName string) error {
	if c.channelToken == "" {
		return nil
	}
	return c.push(userID, map[string]any{
		"type": "text",
		"text": fmt.Sprintf("「%s」が始まりました！スタンプを集めよう🎉", eventName),
	})
}

// Reminder nudges a participant about an uncollected stamp.
func (c *LineClient) Reminder(userID, stampName string) error {
	if c.channelToken == "" {
		return nil
	}
	return c.push(userID, map[string]any{
		"type": "text",
		"text": fmt.Sprintf("「%s」のスタンプがまだ未取得です。お近くに行ったらチェック！", stampName),
	})
}

func (c *LineClient) push(userID string, message map[string]any) error {
	payload, err := json.Marshal(map[string]any{
		"to":       userID,
		"messages": []map[string]any{message},
	})
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, lineAPIBaseURL+"/message/push", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.channelToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("LINE API error (%d): %s", resp.StatusCode, string(body))
	}

	return nil
}

func (c *LineClient) stampFlexMessage(stamp *models.StampMaster) map[string]any {
	body := []map[string]any{
		{"type": "text", "text": "スタンプゲット！", "weight": "bold", "size": "xl"},
		{"type": "text", "text": stamp.Name, "size": "md", "color": "#666666", "margin": "md"},
	}

	bubble := map[string]any{
		"type": "bubble",
		"body": map[string]any{
			"type":     "box",
			"layout":   "vertical",
			"contents": body,
		},
	}
	if stamp.ImageURL != "" {
		bubble["hero"] = map[string]any{
			"type":        "image",
			"url":         stamp.ImageURL,
			"size":        "full",
			"aspectRatio": "20:13",
			"aspectMode":  "cover",
		}
	}
	if c.liffBaseURL != "" {
		bubble["footer"] = map[string]any{
			"type":   "box",
			"layout": "vertical",
			"contents": []map[string]any{{
				"type":  "button",
				"style": "primary",
				"action": map[string]any{
					"type":  "uri",
					"label": "スタンプ帳を見る",
					"uri":   c.liffBaseURL,
				},
			}},
		}
	}

	return map[string]any{
		"type":     "flex",
		"altText":  fmt.Sprintf("スタンプ「%s」を獲得しました！", stamp.Name),
		"contents": bubble,
	}
}
