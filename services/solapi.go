// services/solapi.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"naver-booking-notifier/config"
	"naver-booking-notifier/models"
)

// SolapiClient is a minimal client for the Solapi message API. Every request
// is signed individually; see SignRequest.
type SolapiClient struct {
	hc      *http.Client
	baseURL string
	apiKey  string
	secret  string
}

func NewSolapiClient(cfg *config.Config) *SolapiClient {
	return &SolapiClient{
		hc:      &http.Client{Timeout: 30 * time.Second},
		baseURL: cfg.SolapiBaseURL,
		apiKey:  cfg.SolapiAPIKey,
		secret:  cfg.SolapiAPISecret,
	}
}

type KakaoButton struct {
	ButtonType string `json:"buttonType"`
	ButtonName string `json:"buttonName"`
	LinkMo     string `json:"linkMo,omitempty"`
	LinkPc     string `json:"linkPc,omitempty"`
}

type KakaoOptions struct {
	PfID       string            `json:"pfId"`
	TemplateID string            `json:"templateId"`
	Variables  map[string]string `json:"variables,omitempty"`
	Buttons    []KakaoButton     `json:"buttons,omitempty"`
}

type Message struct {
	To           string        `json:"to"`
	From         string        `json:"from"`
	KakaoOptions *KakaoOptions `json:"kakaoOptions,omitempty"`
}

type sendRequest struct {
	Message Message `json:"message"`
}

type attachRequest struct {
	Messages []Message `json:"messages"`
}

type scheduleRequest struct {
	ScheduledDate string `json:"scheduledDate"`
}

type groupResponse struct {
	GroupID string `json:"groupId"`
}

// SendMessage fires one immediate alimtalk. The raw provider body is
// returned so callers can report the send acknowledgment.
func (c *SolapiClient) SendMessage(ctx context.Context, msg Message) (json.RawMessage, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/messages/v4/send", sendRequest{Message: msg})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &models.ProviderError{Status: status, Body: string(body)}
	}
	return json.RawMessage(body), nil
}

// CreateGroup creates an empty message group to attach a schedule to.
func (c *SolapiClient) CreateGroup(ctx context.Context) (string, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/messages/v4/groups", struct{}{})
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &models.ProviderError{Status: status, Body: string(body)}
	}
	var res groupResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("decode group response: %w", err)
	}
	if res.GroupID == "" {
		return "", fmt.Errorf("group response missing groupId: %s", string(body))
	}
	return res.GroupID, nil
}

// AttachGroupMessages puts the reminder message(s) into an existing group.
func (c *SolapiClient) AttachGroupMessages(ctx context.Context, groupID string, msgs []Message) error {
	path := fmt.Sprintf("/messages/v4/groups/%s/messages", groupID)
	status, body, err := c.do(ctx, http.MethodPut, path, attachRequest{Messages: msgs})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &models.ProviderError{Status: status, Body: string(body)}
	}
	return nil
}

// ScheduleGroup registers the send time on a group. Solapi expects UTC.
func (c *SolapiClient) ScheduleGroup(ctx context.Context, groupID string, at time.Time) error {
	path := fmt.Sprintf("/messages/v4/groups/%s/schedule", groupID)
	payload := scheduleRequest{ScheduledDate: at.UTC().Format(time.RFC3339)}
	status, body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &models.ProviderError{Status: status, Body: string(body)}
	}
	return nil
}

func (c *SolapiClient) do(ctx context.Context, method, path string, payload interface{}) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, err
	}

	// Fresh credential per request, never reused across workflow steps.
	auth, err := SignRequest(c.apiKey, c.secret)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, b, nil
}
