// career-quest-system/services/advisor_client.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// AdvisorClient talks to the hosted LLM endpoint (Gemini-style
// generateContent API). The service owns prompt construction; this client
// only moves JSON.
type AdvisorClient struct {
	BaseURL string
	Model   string
	APIKey  string
	Client  *http.Client
}

func NewAdvisorClient(baseURL, model, apiKey string) *AdvisorClient {
	return &AdvisorClient{
		BaseURL: baseURL,
		Model:   model,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type generateContentPart struct {
	Text string `json:"text"`
}

type generateContentMessage struct {
	Role  string                `json:"role,omitempty"`
	Parts []generateContentPart `json:"parts"`
}

type generateContentRequest struct {
	Contents         []generateContentMessage `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generateContentPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the model's text reply.
func (c *AdvisorClient) Generate(prompt string) (string, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.BaseURL, c.Model, c.APIKey)

	reqBody := generateContentRequest{
		Contents: []generateContentMessage{
			{Role: "user", Parts: []generateContentPart{{Text: prompt}}},
		},
	}
	reqBody.GenerationConfig.Temperature = 0.7
	reqBody.GenerationConfig.MaxOutputTokens = 1000

	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Printf("Advisor LLM returned %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("advisor generation failed: %d", resp.StatusCode)
	}

	var out generateContentResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("advisor returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
