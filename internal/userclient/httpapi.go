package userclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var ErrServiceUnavailable = errors.New("portal service unavailable")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

type Session struct {
	ID               int64     `json:"id"`
	GroupID          int64     `json:"group_id"`
	GroupName        string    `json:"group_name"`
	ActivityID       int64     `json:"activity_id"`
	ActivityName     string    `json:"activity_name"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	ReviewItemsCount int       `json:"review_items_count"`
}

type SessionList struct {
	Items      []Session `json:"items"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
	TotalPages int       `json:"total_pages"`
}

type WordCounts struct {
	ID           int64  `json:"id"`
	Kanji        string `json:"kanji"`
	Romaji       string `json:"romaji"`
	English      string `json:"english"`
	CorrectCount int    `json:"correct_count"`
	WrongCount   int    `json:"wrong_count"`
}

type SessionDetail struct {
	Session    Session      `json:"session"`
	Words      []WordCounts `json:"words"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	PerPage    int          `json:"per_page"`
	TotalPages int          `json:"total_pages"`
}

type Review struct {
	WordID   int64   `json:"word_id"`
	Correct  bool    `json:"correct"`
	Response *string `json:"response,omitempty"`
}

type ReviewsResult struct {
	Message      string `json:"message"`
	ReviewsCount int    `json:"reviews_count"`
}

type SessionPatch struct {
	GroupID         *int64  `json:"group_id,omitempty"`
	StudyActivityID *int64  `json:"study_activity_id,omitempty"`
	EndTime         *string `json:"end_time,omitempty"`
}

type createSessionRequest struct {
	GroupID         int64 `json:"group_id"`
	StudyActivityID int64 `json:"study_activity_id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *HTTPClient) ListSessions(ctx context.Context, page, perPage int) (SessionList, error) {
	var payload SessionList
	if err := c.doJSON(ctx, http.MethodGet, "/api/study-sessions?"+pageQuery(page, perPage), nil, &payload); err != nil {
		return SessionList{}, err
	}
	return payload, nil
}

func (c *HTTPClient) CreateSession(ctx context.Context, groupID, activityID int64) (Session, error) {
	var payload Session
	request := createSessionRequest{GroupID: groupID, StudyActivityID: activityID}
	if err := c.doJSON(ctx, http.MethodPost, "/api/study-sessions", request, &payload); err != nil {
		return Session{}, err
	}
	return payload, nil
}

func (c *HTTPClient) GetSession(ctx context.Context, id int64, page, perPage int) (SessionDetail, error) {
	var payload SessionDetail
	if err := c.doJSON(ctx, http.MethodGet, sessionPath(id)+"?"+pageQuery(page, perPage), nil, &payload); err != nil {
		return SessionDetail{}, err
	}
	return payload, nil
}

func (c *HTTPClient) UpdateSession(ctx context.Context, id int64, patch SessionPatch) (Session, error) {
	var payload Session
	if err := c.doJSON(ctx, http.MethodPut, sessionPath(id), patch, &payload); err != nil {
		return Session{}, err
	}
	return payload, nil
}

// FinishSession stamps end_time with at.
func (c *HTTPClient) FinishSession(ctx context.Context, id int64, at time.Time) (Session, error) {
	endTime := at.UTC().Format(time.RFC3339)
	return c.UpdateSession(ctx, id, SessionPatch{EndTime: &endTime})
}

func (c *HTTPClient) DeleteSession(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, sessionPath(id), nil, nil)
}

func (c *HTTPClient) SubmitReviews(ctx context.Context, id int64, reviews []Review) (ReviewsResult, error) {
	if reviews == nil {
		reviews = []Review{}
	}

	var payload ReviewsResult
	if err := c.doJSON(ctx, http.MethodPost, sessionPath(id)+"/reviews", reviews, &payload); err != nil {
		return ReviewsResult{}, err
	}
	return payload, nil
}

func (c *HTTPClient) ResetHistory(ctx context.Context) (string, error) {
	var payload messageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/study-sessions/reset", nil, &payload); err != nil {
		return "", err
	}
	return payload.Message, nil
}

func (c *HTTPClient) GetWord(ctx context.Context, id int64) (WordCounts, error) {
	var payload WordCounts
	if err := c.doJSON(ctx, http.MethodGet, "/api/words/"+strconv.FormatInt(id, 10), nil, &payload); err != nil {
		return WordCounts{}, err
	}
	return payload, nil
}

func sessionPath(id int64) string {
	return "/api/study-sessions/" + strconv.FormatInt(id, 10)
}

func pageQuery(page, perPage int) string {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}
	return query.Encode()
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			apiErr.Message = payload.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}
