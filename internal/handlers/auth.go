package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"inkfolio/internal/services"
	. "inkfolio/internal/shared"
)

type AuthHandler struct {
	svc *services.AuthService
}

func NewAuthHandler(svc *services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (a *AuthHandler) Signup(c *gin.Context) {
	var params services.SignUpRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&params); err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	user, err := a.svc.Registration(c.Request.Context(), params)

	if err != nil {
		log.Error().Err(err).Msg("Error registering user")
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusCreated, toUserResponse(user), fmt.Sprintf("User %s created successfully", user.Name))
}

func (a *AuthHandler) Login(c *gin.Context) {
	var params services.LoginRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&params); err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	token, err := a.svc.Login(c.Request.Context(), params)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
