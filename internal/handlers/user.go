package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	m "inkfolio/internal/models"
	"inkfolio/internal/services"
	. "inkfolio/internal/shared"
)

// UserResponse is the public shape of a user; the encrypted credential is
// never part of it.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     string    `json:"image,omitempty"`
	Portfolio []string  `json:"portfolio"`
	Favorites []string  `json:"favorites"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GetAllUsersResponse struct {
	Size int            `json:"size"`
	Data []UserResponse `json:"data"`
}

func toUserResponse(user m.User) UserResponse {
	portfolio := user.Portfolio

	if portfolio == nil {
		portfolio = []string{}
	}

	favorites := user.Favorites

	if favorites == nil {
		favorites = []string{}
	}

	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Image:     user.Image,
		Portfolio: portfolio,
		Favorites: favorites,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type UserHandler struct {
	svc     *services.UserService
	metrics *AppMetrics
}

func NewUserHandler(svc *services.UserService, metrics *AppMetrics) *UserHandler {
	return &UserHandler{svc: svc, metrics: metrics}
}

func (u *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := u.svc.ListUsers(c.Request.Context())

	if err != nil {
		log.Error().Err(err).Msg("Error fetching users")
		SendDomainError(c, err)
		return
	}

	data := make([]UserResponse, 0, len(users))

	for _, user := range users {
		data = append(data, toUserResponse(user))
	}

	c.JSON(http.StatusOK, GetAllUsersResponse{Size: len(data), Data: data})
}

func (u *UserHandler) GetUser(c *gin.Context) {
	user, err := u.svc.GetUser(c.Request.Context(), c.Param("id"))

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, toUserResponse(user))
}

func (u *UserHandler) DeleteUser(c *gin.Context) {
	if err := u.svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		SendDomainError(c, err)
		return
	}

	u.record("delete")

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

type favoriteRequest struct {
	ID string `json:"id"`
}

func (u *UserHandler) AddFavorite(c *gin.Context) {
	var params favoriteRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&params); err != nil || params.ID == "" {
		SendBadRequestError(c, "id", "Tattoo id is required")
		return
	}

	user, err := u.svc.AddFavorite(c.Request.Context(), c.Param("id"), params.ID)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	u.record("favorite.add")

	SendSuccess(c, http.StatusOK, toUserResponse(user))
}

func (u *UserHandler) RemoveFavorite(c *gin.Context) {
	user, err := u.svc.RemoveFavorite(c.Request.Context(), c.Param("id"), c.Param("tattooId"))

	if err != nil {
		SendDomainError(c, err)
		return
	}

	u.record("favorite.remove")

	SendSuccess(c, http.StatusOK, toUserResponse(user))
}

func (u *UserHandler) record(operation string) {
	if u.metrics != nil {
		u.metrics.RecordUserOperation(operation)
	}
}
