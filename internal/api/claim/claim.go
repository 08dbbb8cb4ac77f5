package claim

import (
	"net/http"

	"reward_wheel/internal/api"
	dto "reward_wheel/internal/api/dto/claim"
	"reward_wheel/internal/converter"
	"reward_wheel/internal/service"
	"reward_wheel/pkg/req"
	"reward_wheel/pkg/resp"
)

type HandlerDeps struct {
	Serv service.ClaimService
}

type Handler struct {
	serv service.ClaimService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.VerifyRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	claim, err := h.serv.Verify(r.Context(), payload.Token)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToClaimResponse(*claim))
}
