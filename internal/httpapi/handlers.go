package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"lang-portal/internal/studysession"
)

func (a *API) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (a *API) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listSessions(w, r)
	case http.MethodPost:
		a.createSession(w, r)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (a *API) listSessions(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := a.service.ListSessions(r.Context(), page)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionListResponse{
		Items:      toSessionResponses(result.Items),
		Total:      result.Total,
		Page:       result.Page,
		PerPage:    result.PerPage,
		TotalPages: result.TotalPages,
	})
}

func (a *API) createSession(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var input studysession.CreateSessionInput
	// An empty body falls through to field validation.
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	session, err := a.service.CreateSession(r.Context(), input)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

func (a *API) HandleSession(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getSession(w, r, id)
	case http.MethodPut:
		a.updateSession(w, r, id)
	case http.MethodDelete:
		a.deleteSession(w, r, id)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) getSession(w http.ResponseWriter, r *http.Request, id int64) {
	page, err := parsePage(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	detail, err := a.service.GetSessionDetail(r.Context(), id, page)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionDetailResponse{
		Session:    toSessionResponse(detail.Session),
		Words:      toSessionWordResponses(detail.Words),
		Total:      detail.Total,
		Page:       detail.Page,
		PerPage:    detail.PerPage,
		TotalPages: detail.TotalPages,
	})
}

func (a *API) updateSession(w http.ResponseWriter, r *http.Request, id int64) {
	defer r.Body.Close()

	var request updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		if errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: studysession.ErrNoUpdateFields.Error()})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	update := studysession.SessionUpdate{
		GroupID:         request.GroupID,
		StudyActivityID: request.StudyActivityID,
	}
	if request.EndTime != nil {
		endTime, err := parseTimestamp(*request.EndTime)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		update.EndTime = &endTime
	}

	session, err := a.service.UpdateSession(r.Context(), id, update)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

func (a *API) deleteSession(w http.ResponseWriter, r *http.Request, id int64) {
	if err := a.service.DeleteSession(r.Context(), id); err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) HandleReviews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	defer r.Body.Close()

	var inputs []studysession.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body must be an array of reviews"})
		return
	}

	count, err := a.service.SubmitReviews(r.Context(), id, inputs)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, reviewsResponse{
		Message:      "Successfully added " + strconv.Itoa(count) + " reviews",
		ReviewsCount: count,
	})
}

func (a *API) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	if err := a.service.ResetHistory(r.Context()); err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Study history cleared successfully"})
}

func (a *API) HandleWord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	stats, err := a.service.WordStats(r.Context(), id)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, wordResponse{
		ID:           stats.ID,
		Kanji:        stats.Kanji,
		Romaji:       stats.Romaji,
		English:      stats.English,
		CorrectCount: stats.CorrectCount,
		WrongCount:   stats.WrongCount,
	})
}
