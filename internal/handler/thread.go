package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/forum/internal/api"
	"github.com/itchan-dev/forum/internal/domain"
	"github.com/itchan-dev/forum/internal/utils"
)

// ListThreads serves /threads?channel=&by=&popular
func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.listThreads(w, r, domain.ThreadFilters{
		Channel: q.Get("channel"),
		By:      q.Get("by"),
		Popular: parsePopular(r),
	})
}

// ListChannelThreads serves /threads/{channel}?by=&popular
func (h *Handler) ListChannelThreads(w http.ResponseWriter, r *http.Request) {
	h.listThreads(w, r, domain.ThreadFilters{
		Channel: chi.URLParam(r, "channel"),
		By:      r.URL.Query().Get("by"),
		Popular: parsePopular(r),
	})
}

func (h *Handler) listThreads(w http.ResponseWriter, r *http.Request, filters domain.ThreadFilters) {
	threads, err := h.query.Collect(r.Context(), filters)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, api.NewThreadSummaries(threads))
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	id, err := threadIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread, err := h.thread.Get(r.Context(), chi.URLParam(r, "channel"), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := api.ThreadResponse{
		ThreadMetadata: thread.ThreadMetadata,
		Path:           thread.Path(),
		BodyHTML:       h.renderer.Render(thread.Body),
		Replies:        make([]api.ReplyResponse, len(thread.Replies)),
	}
	for i, reply := range thread.Replies {
		response.Replies[i] = api.ReplyResponse{Reply: reply, BodyHTML: h.renderer.Render(reply.Body)}
	}
	utils.WriteJSON(w, response)
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	var body api.CreateThreadRequest
	if err := utils.Decode(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread, err := h.thread.Create(r.Context(), domain.ThreadCreationData{
		Title:     body.Title,
		Body:      body.Body,
		ChannelId: body.ChannelId,
		Author:    *user,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	http.Redirect(w, r, thread.Path(), http.StatusFound)
}

// DeleteThread serves both /threads/{id} and /threads/{channel}/{id}.
func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
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

	if err := h.thread.Delete(r.Context(), *user, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
