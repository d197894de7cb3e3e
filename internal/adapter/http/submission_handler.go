package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"equipment-loan/internal/domain/submission"
	ucSubmission "equipment-loan/internal/usecase/submission"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SubmissionHandler struct {
	uc  *ucSubmission.Usecase
	log *zap.Logger
}

func NewSubmissionHandler(uc *ucSubmission.Usecase, log *zap.Logger) *SubmissionHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionHandler{uc: uc, log: log}
}

// createSubmissionReq binds the public form. Quantities arrive as
// qty_<kind> form fields, or as a map in JSON bodies.
type createSubmissionReq struct {
	Name           string            `json:"name"            form:"name"            validate:"max=200"`
	Phone          string            `json:"phone"           form:"phone"           validate:"max=50"`
	Email          string            `json:"email"           form:"email"           validate:"omitempty,email,max=254"`
	Group          string            `json:"group"           form:"group"`
	EventName      string            `json:"event_name"      form:"event_name"`
	StartDate      string            `json:"start_date"      form:"start_date"`
	StartTime      string            `json:"start_time"      form:"start_time"`
	EndDate        string            `json:"end_date"        form:"end_date"`
	EndTime        string            `json:"end_time"        form:"end_time"`
	Location       string            `json:"location"        form:"location"`
	EventType      string            `json:"event_type"      form:"event_type"`
	Participants   string            `json:"participants"    form:"participants"`
	Equipment      []string          `json:"equipment"       form:"equipment"`
	Quantities     map[string]string `json:"quantities"`
	SpecialRequest string            `json:"special_request" form:"special_request"`
	Donation       string            `json:"donation"        form:"donation"`
	DonationMethod string            `json:"donation_method" form:"donation_method"`
	Remarks        string            `json:"remarks"         form:"remarks"`
	EmergencyName  string            `json:"emergency_name"  form:"emergency_name"`
	EmergencyPhone string            `json:"emergency_phone" form:"emergency_phone"`
}

func (r createSubmissionReq) selections(c echo.Context) []submission.Selection {
	out := make([]submission.Selection, 0, len(r.Equipment))
	for _, kind := range r.Equipment {
		qty, ok := r.Quantities[kind]
		if !ok {
			qty = c.FormValue("qty_" + kind)
		}
		out = append(out, submission.Selection{Kind: kind, Quantity: qty})
	}
	return out
}

func (r createSubmissionReq) toInput(c echo.Context) ucSubmission.CreateInput {
	return ucSubmission.CreateInput{
		Name:           r.Name,
		Phone:          r.Phone,
		Email:          r.Email,
		GroupName:      r.Group,
		EventName:      r.EventName,
		StartDate:      r.StartDate,
		StartTime:      r.StartTime,
		EndDate:        r.EndDate,
		EndTime:        r.EndTime,
		Location:       r.Location,
		EventType:      r.EventType,
		Participants:   r.Participants,
		Equipment:      r.selections(c),
		SpecialRequest: r.SpecialRequest,
		Donation:       r.Donation,
		DonationMethod: r.DonationMethod,
		Remarks:        r.Remarks,
		EmergencyName:  r.EmergencyName,
		EmergencyPhone: r.EmergencyPhone,
	}
}

func (h *SubmissionHandler) Create(c echo.Context) error {
	var req createSubmissionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	res, err := h.uc.Create(c.Request().Context(), req.toInput(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// Status lets an applicant look up their newest request by name.
func (h *SubmissionHandler) Status(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"status": "error", "message": "name is required"})
	}
	view, err := h.uc.FindByRequesterName(c.Request().Context(), name)
	if errors.Is(err, submission.ErrNotFound) {
		return c.JSON(http.StatusOK, map[string]string{"status": "not_found"})
	}
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"status": view.ReviewStatus, "data": view})
}

func (h *SubmissionHandler) List(c echo.Context) error {
	list, err := h.uc.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *SubmissionHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	s, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SubmissionHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SubmissionHandler) Export(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	doc, err := h.uc.Export(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Blob(http.StatusOK, doc.ContentType, doc.Body)
}

// pathID parses :id. The returned error is an *echo.HTTPError.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid submission id")
	}
	return id, nil
}
