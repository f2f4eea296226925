package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/seabattle/internal/api/request"
	"github.com/mcoot/seabattle/internal/api/response"
	"github.com/mcoot/seabattle/internal/model"
	"github.com/mcoot/seabattle/internal/services/session"
)

// SessionHandler handles bot session endpoints
type SessionHandler struct {
	service *session.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service *session.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

func sessionID(r *http.Request) model.SessionID {
	return model.SessionID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Strategy == "" {
		WriteError(w, NewInvalidRequestError("strategy is required"))
		return
	}

	sess, err := h.service.CreateSession(r.Context(), req.Strategy, req.Policy)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, "/api/v1/sessions/"+string(sess.ID), response.SessionFromModel(sess))
}

// List handles GET /api/v1/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.ListSessions(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.SessionList{Sessions: make([]response.Session, len(sessions))}
	for i, sess := range sessions {
		resp.Sessions[i] = response.SessionFromModel(sess)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.GetSession(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// Delete handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSession(r.Context(), sessionID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// NextShot handles POST /api/v1/sessions/{id}/shots
func (h *SessionHandler) NextShot(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	shot, err := h.service.NextShot(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Shot{SessionID: string(id), Cell: response.CoordinateFromModel(shot)})
}

// ReportResult handles POST /api/v1/sessions/{id}/results
func (h *SessionHandler) ReportResult(w http.ResponseWriter, r *http.Request) {
	var req request.ShotResultRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	sess, err := h.service.ReportResult(r.Context(), sessionID(r), req.Hit, req.Sunk)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// Incoming handles POST /api/v1/sessions/{id}/incoming
func (h *SessionHandler) Incoming(w http.ResponseWriter, r *http.Request) {
	var req request.IncomingShotRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Row == nil || req.Col == nil {
		WriteError(w, NewInvalidRequestError("row and col are required"))
		return
	}
	c, err := model.NewCoordinate(*req.Row, *req.Col)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.service.IncomingShot(r.Context(), sessionID(r), c)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.IncomingResultFromService(result))
}
