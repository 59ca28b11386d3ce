package partners

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/studycircleapp/studycircle-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetMatchScore(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	vars := mux.Vars(r)
	targetID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	result, err := h.service.GetMatchScore(r.Context(), userID, targetID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute match score")
		return
	}

	utils.RespondWithData(w, http.StatusOK, result)
}

func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	params := &DiscoverParams{}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			params.Limit = l
		}
	}
	if r.URL.Query().Get("refresh") == "true" {
		params.Refresh = true
	}

	feed, err := h.service.Discover(r.Context(), userID, params)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Set up your study profile first")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build discover feed")
		return
	}

	utils.RespondWithData(w, http.StatusOK, feed)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	q := r.URL.Query()
	params := &SearchParams{
		Query:          q.Get("q"),
		ExpandSynonyms: q.Get("synonyms") != "false",
		FuzzyMatch:     q.Get("fuzzy") != "false",
	}

	if minScore := q.Get("min_score"); minScore != "" {
		if m, err := strconv.Atoi(minScore); err == nil {
			params.MinScore = m
		}
	}
	if limit := q.Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			params.Limit = l
		}
	}

	hits, err := h.service.Search(r.Context(), userID, params)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to search partners")
		return
	}

	utils.RespondWithData(w, http.StatusOK, hits)
}

func (h *Handler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	vars := mux.Vars(r)
	receiverID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	dto := SendPartnerRequestDTO{ReceiverID: receiverID}
	if r.Body != nil {
		// Body is optional; message and subject enrich the request
		json.NewDecoder(r.Body).Decode(&dto)
		dto.ReceiverID = receiverID
	}

	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.service.SendPartnerRequest(r.Context(), userID, &dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrCannotRequestSelf):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrAlreadyRequested), errors.Is(err, ErrAlreadyConnected):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send partner request")
		}
		return
	}

	utils.RespondWithData(w, http.StatusCreated, request)
}

func (h *Handler) RespondToRequest(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	vars := mux.Vars(r)
	requestID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var dto RespondPartnerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.service.RespondToRequest(r.Context(), requestID, userID, &dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrUnauthorized):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to respond to request")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, request)
}

func (h *Handler) GetRequests(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	requestType := r.URL.Query().Get("type")
	if requestType == "" {
		requestType = "all"
	}

	requests, err := h.service.GetPartnerRequests(r.Context(), userID, requestType)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get partner requests")
		return
	}

	utils.RespondWithData(w, http.StatusOK, requests)
}

func (h *Handler) GetConnections(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	active := true
	if r.URL.Query().Get("active") == "false" {
		active = false
	}

	connections, err := h.service.GetConnections(r.Context(), userID, active)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get connections")
		return
	}

	utils.RespondWithData(w, http.StatusOK, connections)
}

func (h *Handler) Disconnect(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	vars := mux.Vars(r)
	connectionID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid connection ID")
		return
	}

	if err := h.service.Disconnect(r.Context(), connectionID, userID); err != nil {
		switch {
		case errors.Is(err, ErrConnectionNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrUnauthorized):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to disconnect")
		}
		return
	}

	utils.MessageResponse(w, "Disconnected", http.StatusOK)
}

func (h *Handler) RecordSession(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	vars := mux.Vars(r)
	connectionID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid connection ID")
		return
	}

	if err := h.service.RecordSession(r.Context(), connectionID, userID); err != nil {
		switch {
		case errors.Is(err, ErrConnectionNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrUnauthorized):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record session")
		}
		return
	}

	utils.MessageResponse(w, "Session recorded", http.StatusOK)
}

func (h *Handler) GetDailyPicks(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil {
			limit = n
		}
	}

	picks, err := h.service.GetDailyPicks(r.Context(), userID, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get daily picks")
		return
	}

	utils.RespondWithData(w, http.StatusOK, picks)
}

func (h *Handler) MarkPickSeen(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	vars := mux.Vars(r)
	pickID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pick ID")
		return
	}

	if err := h.service.MarkPickSeen(r.Context(), userID, pickID); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to mark pick as seen")
		return
	}

	utils.MessageResponse(w, "Pick marked as seen", http.StatusOK)
}
