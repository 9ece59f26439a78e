package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nutri_quiz/internal/adapter/http/dto/request"
	"nutri_quiz/internal/adapter/http/dto/response"
	"nutri_quiz/internal/domain/quiz"
	"nutri_quiz/internal/flow"
	"nutri_quiz/pkg/logger"
)

const SubmitPath = "/submit-quiz"

const defaultTimeout = 60 * time.Second

// QuizClient posts a finished quiz to the submission endpoint on behalf of
// the flow controller.
type QuizClient struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

var _ flow.Submitter = (*QuizClient)(nil)

func NewQuizClient(baseURL string, httpClient *http.Client, log *logger.Logger) *QuizClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &QuizClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        logger.OrNop(log),
	}
}

// Submit returns the decoded answer for any HTTP status. The error is reserved
// for transport failures and undecodable success bodies.
func (c *QuizClient) Submit(ctx context.Context, answers quiz.Answers) (flow.SubmitResponse, error) {
	body, err := json.Marshal(request.SubmitQuizRequest{Answers: answers})
	if err != nil {
		return flow.SubmitResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SubmitPath, bytes.NewReader(body))
	if err != nil {
		return flow.SubmitResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Errorw("[quiz][client] request failed", "error", err)
		return flow.SubmitResponse{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return flow.SubmitResponse{StatusCode: resp.StatusCode}, err
	}

	var out response.SubmitQuizResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			return flow.SubmitResponse{StatusCode: resp.StatusCode}, fmt.Errorf("decode submit response: %w", err)
		}
		c.log.Warnw("[quiz][client] non-json error response", "status", resp.StatusCode)
		return flow.SubmitResponse{StatusCode: resp.StatusCode}, nil
	}

	c.log.Debugw("[quiz][client] response", "status", resp.StatusCode, "success", out.Success)
	return flow.SubmitResponse{
		StatusCode:  resp.StatusCode,
		Success:     out.Success,
		PaymentURL:  out.PaymentURL,
		PatientID:   out.PatientID,
		RedirectURL: out.RedirectURL,
		Error:       out.Error,
	}, nil
}
