package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/forum/internal/api"
	"github.com/itchan-dev/forum/internal/domain"
	"github.com/itchan-dev/forum/internal/utils"
)

func (h *Handler) ListChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.channel.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, channels)
}

func (h *Handler) GetChannel(w http.ResponseWriter, r *http.Request) {
	channel, err := h.channel.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, channel)
}

func (h *Handler) CreateChannel(w http.ResponseWriter, r *http.Request) {
	var body api.CreateChannelRequest
	if err := utils.Decode(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	channel, err := h.channel.Create(r.Context(), domain.ChannelCreationData{Name: body.Name, Slug: body.Slug})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSONStatus(w, http.StatusCreated, channel)
}
