package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"roomsvc/internal/meetingrooms/service"
	apperrors "roomsvc/pkg/errors"
	httputil "roomsvc/pkg/http"
	"roomsvc/pkg/logger"
	"roomsvc/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type MeetingRoomHandler struct {
	service service.MeetingRoomService
	log     *logger.Logger
}

func NewMeetingRoomHandler(service service.MeetingRoomService, log *logger.Logger) *MeetingRoomHandler {
	return &MeetingRoomHandler{
		service: service,
		log:     log,
	}
}

func (h *MeetingRoomHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.service.GetAllActive(r.Context())
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

func (h *MeetingRoomHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := parseRoomID(ps)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	room, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *MeetingRoomHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload model.MeetingRoomCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	room, err := h.service.Create(r.Context(), &payload)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, room); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *MeetingRoomHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := parseRoomID(ps)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	var payload model.MeetingRoomUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, "Update", apperrors.InvalidInput("Invalid request body"))
		return
	}

	room, err := h.service.Update(r.Context(), id, &payload)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *MeetingRoomHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := parseRoomID(ps)
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	room, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	// The soft-deleted room is returned so clients can see the flag flip.
	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

func (h *MeetingRoomHandler) ListReservations(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := parseRoomID(ps)
	if err != nil {
		h.writeError(w, "ListReservations", err)
		return
	}

	reservations, err := h.service.ListReservations(r.Context(), id)
	if err != nil {
		h.writeError(w, "ListReservations", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "ListReservations", "error", err)
	}
}

func (h *MeetingRoomHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/meeting_rooms", h.GetAll)
	router.POST("/meeting_rooms", h.Create)
	router.GET("/meeting_rooms/:id", h.GetByID)
	router.PATCH("/meeting_rooms/:id", h.Update)
	router.DELETE("/meeting_rooms/:id", h.Delete)
	router.GET("/meeting_rooms/:id/reservations", h.ListReservations)
}

func (h *MeetingRoomHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func parseRoomID(ps httprouter.Params) (int64, error) {
	raw := ps.ByName("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput("Invalid meeting room id: " + raw)
	}
	return id, nil
}
