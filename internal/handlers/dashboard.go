package handlers

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/pkg/actions"
	appctx "github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/repositories"
)

// submissionLogLimit caps how many rows the submission log shows per page.
const submissionLogLimit = 20

// DashboardHandler serves the dashboard greeting and the three form flows.
type DashboardHandler struct {
	service     *actions.Service
	submissions repositories.SubmissionRepo
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *actions.Service, submissions repositories.SubmissionRepo) *DashboardHandler {
	return &DashboardHandler{
		service:     service,
		submissions: submissions,
	}
}

// GreetingResponse is the dashboard landing payload
type GreetingResponse struct {
	Greeting string `json:"greeting"`
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(g *echo.Group) {
	dashboard := g.Group("/dashboard")
	dashboard.GET("", h.Greeting)
	dashboard.POST("/intake", h.SubmitIntake)
	dashboard.POST("/ops", h.SubmitOpsRequest)
	dashboard.POST("/risk", h.SubmitRiskReview)
	dashboard.GET("/submissions", h.ListSubmissions)
	dashboard.PUT("/submissions/:id", h.UpdateSubmission)
	dashboard.DELETE("/submissions/:id", h.DeleteSubmission)
}

// Greeting handles GET /dashboard
func (h *DashboardHandler) Greeting(c echo.Context) error {
	name := appctx.GetUserName(c.Request().Context())
	if name == "" {
		name = "Operator"
	}

	return SuccessResponse(c, GreetingResponse{
		Greeting: fmt.Sprintf("Welcome back, %s", name),
	})
}

// SubmitIntake handles POST /dashboard/intake
func (h *DashboardHandler) SubmitIntake(c echo.Context) error {
	fields, err := FormFields(c)
	if err != nil {
		return err
	}

	result := h.service.SubmitIntake(c.Request().Context(), fields)
	return SuccessResponse(c, result)
}

// SubmitOpsRequest handles POST /dashboard/ops
func (h *DashboardHandler) SubmitOpsRequest(c echo.Context) error {
	fields, err := FormFields(c)
	if err != nil {
		return err
	}

	result := h.service.SubmitOpsRequest(c.Request().Context(), fields)
	return SuccessResponse(c, result)
}

// SubmitRiskReview handles POST /dashboard/risk
func (h *DashboardHandler) SubmitRiskReview(c echo.Context) error {
	fields, err := FormFields(c)
	if err != nil {
		return err
	}

	result := h.service.SubmitRiskReview(c.Request().Context(), fields)
	return SuccessResponse(c, result)
}

// ListSubmissions handles GET /dashboard/submissions?page=
func (h *DashboardHandler) ListSubmissions(c echo.Context) error {
	page := models.SubmissionPage(c.QueryParam("page"))
	if !page.IsValid() {
		return BadRequest("unknown submission page")
	}

	submissions, err := h.submissions.ListByPage(c.Request().Context(), page, submissionLogLimit)
	if err != nil {
		return err
	}

	return SuccessResponse(c, submissions)
}

// UpdateSubmission handles PUT /dashboard/submissions/:id
func (h *DashboardHandler) UpdateSubmission(c echo.Context) error {
	fields, err := FormFields(c)
	if err != nil {
		return err
	}

	page := fields.Get("page")
	delete(fields, "page")

	result := h.service.UpdateSubmission(c.Request().Context(), c.Param("id"), page, fields)
	return SuccessResponse(c, result)
}

// DeleteSubmission handles DELETE /dashboard/submissions/:id
func (h *DashboardHandler) DeleteSubmission(c echo.Context) error {
	result := h.service.DeleteSubmission(c.Request().Context(), c.Param("id"))
	return SuccessResponse(c, result)
}
