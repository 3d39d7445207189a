package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/Vovarama1992/medi_translate/internal/apperr"
)

// DeepgramClient — запасной STT-провайдер (STT_PROVIDER=deepgram).
type DeepgramClient struct {
	apiKey string
	client *http.Client
}

func NewDeepgramClient(apiKey string) *DeepgramClient {
	return &DeepgramClient{
		apiKey: apiKey,
		client: &http.Client{},
	}
}

func (c *DeepgramClient) Transcribe(ctx context.Context, audio []byte, filename, language string) (string, string, error) {
	endpoint := "https://api.deepgram.com/v1/listen?model=nova-2&smart_format=true"
	if language != "" {
		endpoint += "&language=" + url.QueryEscape(language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(audio))
	if err != nil {
		return "", "", err
	}

	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", contentTypeByName(filename))

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", "", apperr.UpstreamTimeout("deepgram request", err)
		}
		return "", "", apperr.UpstreamUnavailable("deepgram request", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return "", "", classifyByStatus(fmt.Sprintf("deepgram: %s", body), resp.StatusCode, nil)
	}

	var parsed struct {
		Results struct {
			Channels []struct {
				DetectedLanguage string `json:"detected_language"`
				Alternatives     []struct {
					Transcript string `json:"transcript"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", "", apperr.UpstreamUnavailable("decode deepgram", err)
	}

	if len(parsed.Results.Channels) == 0 ||
		len(parsed.Results.Channels[0].Alternatives) == 0 {
		return "", "", apperr.UpstreamRejected("deepgram: empty transcript", nil)
	}

	ch := parsed.Results.Channels[0]
	detected := ch.DetectedLanguage
	if detected == "" {
		detected = language
	}
	return ch.Alternatives[0].Transcript, detected, nil
}

func contentTypeByName(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".ogg", ".oga":
		return "audio/ogg"
	case ".m4a":
		return "audio/mp4"
	}
	// браузерный MediaRecorder по умолчанию
	return "audio/webm"
}
