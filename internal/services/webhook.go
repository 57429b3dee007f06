package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cageside-dev/cageside/internal/models"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Footer      *DiscordFooter        `json:"footer,omitempty"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	ColorGreen = 65280    // #00FF00 - member joined
	ColorBlue  = 3447003  // #3498DB - picks submitted
	ColorGold  = 16766720 // #FFD700 - event reminder

	webhookUsername = "Cageside"
)

// SendMemberJoinedNotification posts to the league's configured webhooks when
// a new member joins.
func SendMemberJoinedNotification(league models.League, user models.User) error {
	if league.DiscordWebhook != "" {
		payload := DiscordWebhookRequest{
			Username: webhookUsername,
			Embeds: []DiscordEmbed{
				{
					Title:       "New league member",
					Description: fmt.Sprintf("**%s** joined **%s**.", user.Username, league.Name),
					Color:       ColorGreen,
					Fields: []DiscordWebhookField{
						{Name: "Member", Value: user.Username, Inline: true},
						{Name: "League", Value: league.Name, Inline: true},
					},
					Footer:    &DiscordFooter{Text: fmt.Sprintf("League code: %s", league.Code)},
					Timestamp: time.Now().Format(time.RFC3339),
				},
			},
		}
		if err := sendDiscordWebhook(league.DiscordWebhook, payload); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	if league.SlackWebhook != "" {
		payload := SlackWebhookRequest{
			Username:  webhookUsername,
			IconEmoji: ":boxing_glove:",
			Text:      fmt.Sprintf("*%s* joined *%s*", user.Username, league.Name),
			Attachments: []SlackAttachment{
				{
					Color: "good",
					Title: "New league member",
					Fields: []SlackField{
						{Title: "Member", Value: user.Username, Short: true},
						{Title: "League", Value: league.Name, Short: true},
					},
					Footer:    fmt.Sprintf("League code: %s", league.Code),
					Timestamp: time.Now().Unix(),
				},
			},
		}
		if err := sendSlackWebhook(league.SlackWebhook, payload); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	return nil
}

// SendPicksSubmittedNotification posts when a member locks in picks for an
// event.
func SendPicksSubmittedNotification(league models.League, user models.User, event models.Event, count int) error {
	if league.DiscordWebhook != "" {
		payload := DiscordWebhookRequest{
			Username: webhookUsername,
			Embeds: []DiscordEmbed{
				{
					Title:       "Picks are in",
					Description: fmt.Sprintf("**%s** submitted %d picks for **%s**.", user.Username, count, event.Name),
					Color:       ColorBlue,
					Fields: []DiscordWebhookField{
						{Name: "Member", Value: user.Username, Inline: true},
						{Name: "Event", Value: event.Name, Inline: true},
						{Name: "Picks", Value: fmt.Sprintf("%d", count), Inline: true},
					},
					Footer:    &DiscordFooter{Text: fmt.Sprintf("League: %s", league.Name)},
					Timestamp: time.Now().Format(time.RFC3339),
				},
			},
		}
		if err := sendDiscordWebhook(league.DiscordWebhook, payload); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	if league.SlackWebhook != "" {
		payload := SlackWebhookRequest{
			Username:  webhookUsername,
			IconEmoji: ":boxing_glove:",
			Text:      fmt.Sprintf("*%s* submitted %d picks for *%s*", user.Username, count, event.Name),
			Attachments: []SlackAttachment{
				{
					Color: "#3498DB",
					Title: "Picks are in",
					Fields: []SlackField{
						{Title: "Member", Value: user.Username, Short: true},
						{Title: "Event", Value: event.Name, Short: true},
						{Title: "Picks", Value: fmt.Sprintf("%d", count), Short: true},
					},
					Footer:    fmt.Sprintf("League: %s", league.Name),
					Timestamp: time.Now().Unix(),
				},
			},
		}
		if err := sendSlackWebhook(league.SlackWebhook, payload); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	return nil
}

// SendEventReminder nudges a league that an event is about to start and picks
// close soon.
func SendEventReminder(league models.League, event models.Event) error {
	when := event.Date.Format("2006-01-02 15:04 UTC")

	if league.DiscordWebhook != "" {
		payload := DiscordWebhookRequest{
			Username: webhookUsername,
			Embeds: []DiscordEmbed{
				{
					Title:       "Picks close soon",
					Description: fmt.Sprintf("**%s** starts within 24 hours. Get your picks in!", event.Name),
					Color:       ColorGold,
					Fields: []DiscordWebhookField{
						{Name: "Event", Value: event.Name, Inline: true},
						{Name: "Starts", Value: when, Inline: true},
						{Name: "Location", Value: event.Location, Inline: true},
					},
					Footer:    &DiscordFooter{Text: fmt.Sprintf("League: %s", league.Name)},
					Timestamp: time.Now().Format(time.RFC3339),
				},
			},
		}
		if err := sendDiscordWebhook(league.DiscordWebhook, payload); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	if league.SlackWebhook != "" {
		payload := SlackWebhookRequest{
			Username:  webhookUsername,
			IconEmoji: ":alarm_clock:",
			Text:      fmt.Sprintf(":alarm_clock: *%s* starts within 24 hours — picks close soon", event.Name),
			Attachments: []SlackAttachment{
				{
					Color: "warning",
					Title: event.Name,
					Fields: []SlackField{
						{Title: "Starts", Value: when, Short: true},
						{Title: "Location", Value: event.Location, Short: true},
					},
					Footer:    fmt.Sprintf("League: %s", league.Name),
					Timestamp: time.Now().Unix(),
				},
			},
		}
		if err := sendSlackWebhook(league.SlackWebhook, payload); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	return nil
}

func sendDiscordWebhook(webhookURL string, payload DiscordWebhookRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Discord payload: %w", err)
	}

	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send Discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("Discord webhook returned status %d", resp.StatusCode)
	}

	return nil
}

func sendSlackWebhook(webhookURL string, payload SlackWebhookRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack payload: %w", err)
	}

	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send Slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("Slack webhook returned status %d", resp.StatusCode)
	}

	return nil
}
