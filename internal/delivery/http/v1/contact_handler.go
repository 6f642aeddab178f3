package v1

import (
	"net/http"

	"go-agency-backend/internal/delivery/http/response"
	"go-agency-backend/internal/domain"
	"go-agency-backend/internal/usecase"
	"go-agency-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", handler.SubmitContact)
}

// SubmitContact accepts a contact form submission and dispatches the
// operator notification. Validation failures, rate-limit rejections,
// dispatch failures and timeouts each map to their own status code; the
// usecase returns them as coded errors for the error middleware.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	if err := h.contactUC.SubmitContact(c.Request.Context(), &req, c.ClientIP()); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, usecase.MsgSent, nil)
}
