package handlers

import (
	"net/http"

	"gigwork_backend/internal/middleware"
	"gigwork_backend/internal/services"
	"gigwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProposalHandler struct {
	*BaseHandler
	proposalService services.ProposalService
}

func NewProposalHandler(base *BaseHandler, proposalService services.ProposalService) *ProposalHandler {
	return &ProposalHandler{
		BaseHandler:     base,
		proposalService: proposalService,
	}
}

func (h *ProposalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Token-gated invitee endpoints, deliberately unauthenticated: the
	// invitee may not have an account yet.
	proposals := rg.Group("/proposals")
	{
		proposals.GET("/:token", h.GetByToken)
		proposals.POST("/:token/accept", h.Accept)
		proposals.POST("/:token/reject", h.Reject)
	}

	admin := rg.Group("/admin/proposals")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("", h.Create)
		admin.GET("", h.List)
	}
}

func (h *ProposalHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProposalRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.proposalService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ProposalHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	resp, err := h.proposalService.List(userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProposalHandler) GetByToken(c *gin.Context) {
	resp, err := h.proposalService.GetByToken(c.Param("token"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProposalHandler) Accept(c *gin.Context) {
	var req dto.AcceptProposalRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.proposalService.Accept(c.Param("token"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProposalHandler) Reject(c *gin.Context) {
	resp, err := h.proposalService.Reject(c.Param("token"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
