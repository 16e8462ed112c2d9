package handler

import (
	"net/http"

	"github.com/itchan-dev/forum/internal/api"
	"github.com/itchan-dev/forum/internal/domain"
	mw "github.com/itchan-dev/forum/internal/middleware"
	"github.com/itchan-dev/forum/internal/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body api.RegisterRequest
	if err := utils.Decode(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.auth.Register(r.Context(), domain.Credentials{Name: body.Name, Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSONStatus(w, http.StatusCreated, api.RegisterResponse{Id: id, Message: "Registered. You can login now"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r, &body, h.validator); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	accessToken, err := h.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	mw.SetAccessToken(w, accessToken, int(h.cfg.JwtTTL().Seconds()), h.cfg.Public.SecureCookies)

	utils.WriteJSON(w, api.LoginResponse{Message: "You logged in", AccessToken: accessToken})
}

// LoginPrompt answers the GET that follows a guest redirect and says how to sign in.
func (h *Handler) LoginPrompt(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, api.LoginPromptResponse{
		Message: "Login required",
		Method:  http.MethodPost,
		Action:  "/login",
		Fields:  []string{"email", "password"},
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	mw.ClearAccessToken(w, h.cfg.Public.SecureCookies)
	utils.WriteJSON(w, api.LogoutResponse{Message: "You logged out"})
}
