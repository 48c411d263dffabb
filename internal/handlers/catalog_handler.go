package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-slots/internal/httperr"
	"github.com/BruksfildServices01/barber-slots/internal/httpresp"
	"github.com/BruksfildServices01/barber-slots/internal/middleware"
	"github.com/BruksfildServices01/barber-slots/internal/models"
	uccatalog "github.com/BruksfildServices01/barber-slots/internal/usecase/catalog"
)

// ======================================================
// HANDLER
// ======================================================

type CatalogHandler struct {
	profile      *uccatalog.Profile
	services     *uccatalog.Services
	descriptions *uccatalog.Descriptions
	followers    *uccatalog.Followers
	ratings      *uccatalog.Ratings
	earnings     *uccatalog.Earnings
}

func NewCatalogHandler(
	profile *uccatalog.Profile,
	services *uccatalog.Services,
	descriptions *uccatalog.Descriptions,
	followers *uccatalog.Followers,
	ratings *uccatalog.Ratings,
	earnings *uccatalog.Earnings,
) *CatalogHandler {
	return &CatalogHandler{
		profile:      profile,
		services:     services,
		descriptions: descriptions,
		followers:    followers,
		ratings:      ratings,
		earnings:     earnings,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type profileRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PostalCode    string `json:"postal_code"`
	Region        string `json:"region"`
	Instagram     string `json:"instagram"`
	Facebook      string `json:"facebook"`
	Website       string `json:"website"`
	PortfolioLink string `json:"portfolio_link"`
}

type serviceRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       string `json:"price" binding:"required"`
	Description string `json:"description"`
}

type descriptionRequest struct {
	Text string `json:"text" binding:"required"`
}

type followRequest struct {
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
}

// ======================================================
// PROFILE
// ======================================================

func (h *CatalogHandler) GetProfile(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)
	h.writeProfile(c, barberID)
}

// PublicProfile is what a client sees before booking.
func (h *CatalogHandler) PublicProfile(c *gin.Context) {
	h.writeProfile(c, c.Param("id"))
}

func (h *CatalogHandler) writeProfile(c *gin.Context, barberID string) {
	b, err := h.profile.Get(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *CatalogHandler) SaveProfile(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.profile.Save(c.Request.Context(), barberID, uccatalog.ProfileInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		PostalCode:    req.PostalCode,
		Region:        req.Region,
		Instagram:     req.Instagram,
		Facebook:      req.Facebook,
		Website:       req.Website,
		PortfolioLink: req.PortfolioLink,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// SERVICES
// ======================================================

func (h *CatalogHandler) ListServices(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)
	h.writeServices(c, barberID)
}

func (h *CatalogHandler) PublicServices(c *gin.Context) {
	h.writeServices(c, c.Param("id"))
}

func (h *CatalogHandler) writeServices(c *gin.Context, barberID string) {
	rows, err := h.services.List(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	s, err := h.services.Create(c.Request.Context(), barberID, uccatalog.ServiceInput(req))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(201, s)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	s, err := h.services.Update(c.Request.Context(), barberID, c.Param("id"), uccatalog.ServiceInput(req))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, s)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	if err := h.services.Delete(c.Request.Context(), barberID, c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(204)
}

// ======================================================
// DESCRIPTIONS
// ======================================================

func (h *CatalogHandler) ListDescriptions(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	rows, err := h.descriptions.List(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *CatalogHandler) AddDescription(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	var req descriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "empty_description", "Description text is required.")
		return
	}

	d, err := h.descriptions.Add(c.Request.Context(), barberID, req.Text)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(201, d)
}

func (h *CatalogHandler) ActivateDescription(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	if err := h.descriptions.Activate(c.Request.Context(), barberID, c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(204)
}

func (h *CatalogHandler) DeleteDescription(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	if err := h.descriptions.Delete(c.Request.Context(), barberID, c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(204)
}

// ======================================================
// FOLLOWERS
// ======================================================

func (h *CatalogHandler) ListFollowers(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	rows, err := h.followers.Of(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *CatalogHandler) Follow(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(string)

	// body is optional; an empty one follows without a phone
	var req followRequest
	_ = c.ShouldBindJSON(&req)

	err := h.followers.Follow(c.Request.Context(), c.Param("id"), models.Customer{
		ID:          customerID,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(204)
}

func (h *CatalogHandler) Unfollow(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(string)

	if err := h.followers.Unfollow(c.Request.Context(), c.Param("id"), customerID); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(204)
}

func (h *CatalogHandler) IsFollowing(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(string)

	ok, err := h.followers.IsFollowing(c.Request.Context(), c.Param("id"), customerID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"following": ok})
}

func (h *CatalogHandler) Following(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(string)

	rows, err := h.followers.Following(c.Request.Context(), customerID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rows)
}

// ======================================================
// RATINGS / EARNINGS
// ======================================================

func (h *CatalogHandler) Ratings(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	sum, err := h.ratings.Summary(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, sum)
}

func (h *CatalogHandler) Earnings(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	rep, err := h.earnings.Execute(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, rep)
}
