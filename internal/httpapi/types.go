package httpapi

import (
	"time"

	"lang-portal/internal/studysession"
)

type sessionResponse struct {
	ID               int64     `json:"id"`
	GroupID          int64     `json:"group_id"`
	GroupName        string    `json:"group_name"`
	ActivityID       int64     `json:"activity_id"`
	ActivityName     string    `json:"activity_name"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	ReviewItemsCount int       `json:"review_items_count"`
}

type sessionListResponse struct {
	Items      []sessionResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
	TotalPages int               `json:"total_pages"`
}

type sessionWordResponse struct {
	ID           int64  `json:"id"`
	Kanji        string `json:"kanji"`
	Romaji       string `json:"romaji"`
	English      string `json:"english"`
	CorrectCount int    `json:"correct_count"`
	WrongCount   int    `json:"wrong_count"`
}

type sessionDetailResponse struct {
	Session    sessionResponse       `json:"session"`
	Words      []sessionWordResponse `json:"words"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PerPage    int                   `json:"per_page"`
	TotalPages int                   `json:"total_pages"`
}

// updateSessionRequest keeps end_time as text so both RFC 3339 and the
// store's "YYYY-MM-DD HH:MM:SS" form are accepted.
type updateSessionRequest struct {
	GroupID         *int64  `json:"group_id"`
	StudyActivityID *int64  `json:"study_activity_id"`
	EndTime         *string `json:"end_time"`
}

type reviewsResponse struct {
	Message      string `json:"message"`
	ReviewsCount int    `json:"reviews_count"`
}

type wordResponse struct {
	ID           int64  `json:"id"`
	Kanji        string `json:"kanji"`
	Romaji       string `json:"romaji"`
	English      string `json:"english"`
	CorrectCount int    `json:"correct_count"`
	WrongCount   int    `json:"wrong_count"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toSessionResponse reports start_time as end_time while a session is still open.
func toSessionResponse(session studysession.Session) sessionResponse {
	endTime := session.StartTime
	if session.EndTime != nil {
		endTime = *session.EndTime
	}
	return sessionResponse{
		ID:               session.ID,
		GroupID:          session.GroupID,
		GroupName:        session.GroupName,
		ActivityID:       session.ActivityID,
		ActivityName:     session.ActivityName,
		StartTime:        session.StartTime,
		EndTime:          endTime,
		ReviewItemsCount: session.ReviewItemsCount,
	}
}

func toSessionResponses(sessions []studysession.Session) []sessionResponse {
	response := make([]sessionResponse, 0, len(sessions))
	for _, session := range sessions {
		response = append(response, toSessionResponse(session))
	}
	return response
}

func toSessionWordResponses(words []studysession.SessionWord) []sessionWordResponse {
	response := make([]sessionWordResponse, 0, len(words))
	for _, word := range words {
		response = append(response, sessionWordResponse{
			ID:           word.ID,
			Kanji:        word.Kanji,
			Romaji:       word.Romaji,
			English:      word.English,
			CorrectCount: word.CorrectCount,
			WrongCount:   word.WrongCount,
		})
	}
	return response
}
