package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/forum/internal/api"
	"github.com/itchan-dev/forum/internal/domain"
	"github.com/itchan-dev/forum/internal/utils"
)

// CreateReply serves both /threads/{id}/replies and /threads/{channel}/{id}/replies
// and redirects back to the thread.
func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}
	id, err := threadIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if channel := chi.URLParam(r, "channel"); channel != "" {
		if _, err := h.threadInChannel(r, channel, id); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
	}

	var body api.CreateReplyRequest
	if err := utils.Decode(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reply, err := h.reply.Create(r.Context(), domain.ReplyCreationData{
		ThreadId: id,
		Body:     body.Body,
		Author:   *user,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	http.Redirect(w, r, reply.ThreadPath(), http.StatusFound)
}

func (h *Handler) GetReply(w http.ResponseWriter, r *http.Request) {
	id, err := replyIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reply, err := h.reply.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, api.ReplyResponse{Reply: reply, BodyHTML: h.renderer.Render(reply.Body)})
}
