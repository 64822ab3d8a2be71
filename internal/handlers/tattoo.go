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

type TattooResponse struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Design    string    `json:"design"`
	Style     string    `json:"style,omitempty"`
	Image     string    `json:"image,omitempty"`
	Favorites int       `json:"favorites"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GetAllTattoosResponse struct {
	Size int              `json:"size"`
	Data []TattooResponse `json:"data"`
}

func toTattooResponse(tattoo m.Tattoo) TattooResponse {
	return TattooResponse{
		ID:        tattoo.ID,
		Owner:     tattoo.Owner,
		Design:    tattoo.Design,
		Style:     tattoo.Style,
		Image:     tattoo.Image,
		Favorites: tattoo.Favorites,
		CreatedAt: tattoo.CreatedAt,
		UpdatedAt: tattoo.UpdatedAt,
	}
}

type TattooHandler struct {
	svc     *services.TattooService
	metrics *AppMetrics
}

func NewTattooHandler(svc *services.TattooService, metrics *AppMetrics) *TattooHandler {
	return &TattooHandler{svc: svc, metrics: metrics}
}

func (t *TattooHandler) GetAllTattoos(c *gin.Context) {
	tattoos, err := t.svc.ListTattoos(c.Request.Context())

	if err != nil {
		log.Error().Err(err).Msg("Error fetching tattoos")
		SendDomainError(c, err)
		return
	}

	data := make([]TattooResponse, 0, len(tattoos))

	for _, tattoo := range tattoos {
		data = append(data, toTattooResponse(tattoo))
	}

	c.JSON(http.StatusOK, GetAllTattoosResponse{Size: len(data), Data: data})
}

func (t *TattooHandler) GetTattoo(c *gin.Context) {
	tattoo, err := t.svc.GetTattoo(c.Request.Context(), c.Param("id"))

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, toTattooResponse(tattoo))
}

// CreateTattoo returns the OWNER with the new tattoo id appended to the
// portfolio, mirroring the write that actually happened across both stores.
func (t *TattooHandler) CreateTattoo(c *gin.Context) {
	startTime := time.Now()

	var params services.TattooRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&params); err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	user, err := t.svc.CreateTattoo(c.Request.Context(), c.Param("id"), params)

	if err != nil {
		log.Error().Err(err).Msg("Error creating tattoo")
		SendDomainError(c, err)
		return
	}

	t.record("create")

	SendSuccess(c, http.StatusCreated, toUserResponse(user))

	log.Info().Dur("time", time.Since(startTime)).Msg("Tattoo created")
}

func (t *TattooHandler) UpdateTattoo(c *gin.Context) {
	var params services.TattooPatch

	if err := json.NewDecoder(c.Request.Body).Decode(&params); err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	user, err := t.svc.UpdateTattoo(c.Request.Context(), c.Param("id"), c.Param("tattooId"), params)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	t.record("update")

	SendSuccess(c, http.StatusOK, toUserResponse(user))
}

func (t *TattooHandler) DeleteTattoo(c *gin.Context) {
	// The delete body is optional; a claimed owner inside it is checked as
	// untrusted input against the stored record.
	var params struct {
		Owner string `json:"owner,omitempty"`
	}

	if c.Request.Body != nil {
		_ = json.NewDecoder(c.Request.Body).Decode(&params)
	}

	user, err := t.svc.DeleteTattoo(c.Request.Context(), c.Param("id"), c.Param("tattooId"), params.Owner)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	t.record("delete")

	SendSuccess(c, http.StatusOK, toUserResponse(user), "Tattoo deleted successfully")
}

func (t *TattooHandler) record(operation string) {
	if t.metrics != nil {
		t.metrics.RecordTattooOperation(operation)
	}
}
