package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	ucReview "equipment-loan/internal/usecase/review"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	uc  *ucReview.Usecase
	log *zap.Logger
}

func NewReviewHandler(uc *ucReview.Usecase, log *zap.Logger) *ReviewHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReviewHandler{uc: uc, log: log}
}

type reviewReq struct {
	Status  string `param:"status" validate:"required,notblank,max=64"`
	Comment string `json:"comment" validate:"max=2000"`
}

type reviewResp struct {
	Success bool `json:"success"`
	*ucReview.ReviewDTO
}

func (h *ReviewHandler) Review(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	req := reviewReq{Status: c.Param("status"), Comment: reviewComment(c)}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Review(c.Request().Context(), ucReview.ReviewInput{ID: id, Status: req.Status, Comment: req.Comment})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, reviewResp{Success: true, ReviewDTO: dto})
}

// reviewComment reads the optional comment. A missing, untyped or malformed
// body means no comment; it never blocks the transition.
func reviewComment(c echo.Context) string {
	r := c.Request()
	ctype := r.Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEApplicationForm) || strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		return c.FormValue("comment")
	}
	if r.Body == nil {
		return c.QueryParam("comment")
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return c.QueryParam("comment")
	}
	var body struct {
		Comment string `json:"comment"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Comment
}

func (h *ReviewHandler) Resend(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	to, err := h.uc.Resend(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "sent to " + to})
}

// TestEmail probes SMTP connectivity; ?to= defaults to the admin recipient.
func (h *ReviewHandler) TestEmail(c echo.Context) error {
	to, err := h.uc.TestEmail(c.Request().Context(), c.QueryParam("to"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "sent to " + to})
}
