package wheel

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"reward_wheel/internal/api"
	dto "reward_wheel/internal/api/dto/wheel"
	"reward_wheel/internal/converter"
	"reward_wheel/internal/service"
	"reward_wheel/pkg/req"
	"reward_wheel/pkg/resp"
)

type HandlerDeps struct {
	Serv service.WheelService
	// AllowedOrigins для вебсокета живого спина, те же что у CORS.
	// Пусто или "*" - любой источник
	AllowedOrigins []string
}

type Handler struct {
	serv     service.WheelService
	upgrader websocket.Upgrader
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv: deps.Serv,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     originChecker(deps.AllowedOrigins),
		},
	}
}

// originChecker Запросы без Origin (не из браузера) пропускаются
func originChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return slices.ContainsFunc(origins, func(o string) bool {
			return strings.EqualFold(o, origin)
		})
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.CreateWheelRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	wheel, err := h.serv.CreateWheel(r.Context(), converter.ToWheel(payload))
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToWheelResponse(*wheel))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.ParseInt(r.URL.Query().Get("campaign_id"), 10, 64)
	if err != nil {
		http.Error(w, "campaign_id must be an integer", http.StatusBadRequest)
		return
	}

	wheels, err := h.serv.ListWheels(r.Context(), campaignID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWheelsResponse(wheels))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := wheelID(w, r)
	if !ok {
		return
	}

	wheel, err := h.serv.GetWheel(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWheelResponse(*wheel))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := wheelID(w, r)
	if !ok {
		return
	}

	if err := h.serv.DeleteWheel(r.Context(), id); err != nil {
		api.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateSegments(w http.ResponseWriter, r *http.Request) {
	id, ok := wheelID(w, r)
	if !ok {
		return
	}

	payload, err := req.Decode[dto.UpdateSegmentsRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	wheel, err := h.serv.UpdateSegments(r.Context(), id, converter.ToSegments(payload.Segments))
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWheelResponse(*wheel))
}

func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	id, ok := wheelID(w, r)
	if !ok {
		return
	}

	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.Spin(r.Context(), id, payload.Participant)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*result))
}

// Image PNG колеса. angle - поворот в радианах, по умолчанию 0
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	id, ok := wheelID(w, r)
	if !ok {
		return
	}

	var angle float64
	if raw := r.URL.Query().Get("angle"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "angle must be a number", http.StatusBadRequest)
			return
		}
		angle = parsed
	}

	img, err := h.serv.Render(r.Context(), id, angle)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := wheelID(w, r)
	if !ok {
		return
	}

	stats, err := h.serv.Stats(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(*stats))
}

func (h *Handler) Spins(w http.ResponseWriter, r *http.Request) {
	id, ok := wheelID(w, r)
	if !ok {
		return
	}

	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	spins, err := h.serv.ListSpins(r.Context(), id, limit)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinRecordsResponse(spins))
}

func wheelID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "wheel id must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
