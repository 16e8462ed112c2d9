package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/forum/internal/domain"
	internal_errors "github.com/itchan-dev/forum/internal/errors"
	mw "github.com/itchan-dev/forum/internal/middleware"
	"github.com/itchan-dev/forum/internal/utils"
)

// threadIdParam reads {id}; a non numeric id cannot name a thread, so it is a 404.
func threadIdParam(r *http.Request) (domain.ThreadId, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, internal_errors.NotFound("Thread not found")
	}
	return id, nil
}

func replyIdParam(r *http.Request) (domain.ReplyId, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, internal_errors.NotFound("Reply not found")
	}
	return id, nil
}

// parsePopular treats any value except "0" and "false" as set, including an empty one.
func parsePopular(r *http.Request) bool {
	q := r.URL.Query()
	if !q.Has("popular") {
		return false
	}
	switch strings.ToLower(q.Get("popular")) {
	case "0", "false":
		return false
	default:
		return true
	}
}

// currentUser is only nil when a protected route was mounted without auth middleware.
func currentUser(w http.ResponseWriter, r *http.Request) *domain.User {
	user := mw.GetUserFromContext(r)
	if user == nil {
		utils.WriteErrorAndStatusCode(w, &internal_errors.ErrorWithStatusCode{Message: "Unauthorized", StatusCode: http.StatusUnauthorized})
	}
	return user
}

// threadInChannel loads a thread and checks it lives in channel, answering 404 otherwise.
func (h *Handler) threadInChannel(r *http.Request, channel domain.ChannelSlug, id domain.ThreadId) (domain.ThreadMetadata, error) {
	thread, err := h.thread.GetById(r.Context(), id)
	if err != nil {
		return domain.ThreadMetadata{}, err
	}
	if thread.Channel != channel {
		return domain.ThreadMetadata{}, internal_errors.NotFound("Thread not found")
	}
	return thread, nil
}
