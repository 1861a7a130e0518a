package v1

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/delivery/http/response"
	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/domain"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/apperror"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - visible jobs only, server-side enforced
	public.GET("/jobs", handler.PublicList)
	public.GET("/job/:id", handler.PublicGetDetails)

	// PROTECTED routes - company token required
	protected.POST("/jobs", handler.Create)
	protected.GET("/jobs", handler.ListOwn)
	protected.PUT("/jobs/:id", handler.Update)
	protected.DELETE("/jobs/:id", handler.Delete)
	protected.POST("/jobs/visibility/:id", handler.ToggleVisibility)
}

// flexFloat accepts a JSON number or a numeric string, so clients that send
// salary as "50000" still store the numeric value.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return err
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// flexTime accepts an RFC3339 string or epoch milliseconds.
type flexTime struct {
	time.Time
	set bool
}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return err
		}
		t.Time, t.set = parsed, true
		return nil
	}
	var millis int64
	if err := json.Unmarshal(b, &millis); err != nil {
		return err
	}
	t.Time, t.set = time.UnixMilli(millis).UTC(), true
	return nil
}

type jobRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Level       string    `json:"level"`
	Salary      flexFloat `json:"salary"`
	Date        flexTime  `json:"date"`
}

// Create godoc
// @Summary      Post a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      jobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /companydata/jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	companyID := c.GetInt64(string(domain.KeyAccountID))

	job := &domain.Job{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Level:       req.Level,
		Salary:      float64(req.Salary),
		Date:        req.Date.Time,
	}

	if err := h.jobUC.Create(c.Request.Context(), companyID, job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// ListOwn godoc
// @Summary      List the authenticated company's jobs
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /companydata/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListOwn(c *gin.Context) {
	companyID := c.GetInt64(string(domain.KeyAccountID))

	jobs, err := h.jobUC.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company job list", jobs)
}

// Update godoc
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int         true  "Job ID"
// @Param        job  body      jobRequest  true  "Job JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /companydata/jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	input := domain.UpdateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Level:       req.Level,
	}
	if req.Salary != 0 {
		salary := float64(req.Salary)
		input.Salary = &salary
	}
	if req.Date.set {
		date := req.Date.Time
		input.Date = &date
	}

	companyID := c.GetInt64(string(domain.KeyAccountID))

	job, err := h.jobUC.Update(c.Request.Context(), companyID, id, input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated successfully", job)
}

// Delete godoc
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /companydata/jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	companyID := c.GetInt64(string(domain.KeyAccountID))

	if err := h.jobUC.Delete(c.Request.Context(), companyID, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}

// ToggleVisibility godoc
// @Summary      Toggle a job's visibility
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /companydata/jobs/visibility/{id} [post]
// @Security     BearerAuth
func (h *JobHandler) ToggleVisibility(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	companyID := c.GetInt64(string(domain.KeyAccountID))

	visible, err := h.jobUC.ToggleVisibility(c.Request.Context(), companyID, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Visibility updated",
		"visible": visible,
	})
}

// PublicList godoc
// @Summary      List visible jobs (public)
// @Description  Visible jobs only, newest first, with company name and logo
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /jobdata/jobs [get]
func (h *JobHandler) PublicList(c *gin.Context) {
	jobs, err := h.jobUC.ListVisible(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.SuccessCount(c, http.StatusOK, "Job list", len(jobs), jobs)
}

// PublicGetDetails godoc
// @Summary      Get job details (public)
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobdata/job/{id} [get]
func (h *JobHandler) PublicGetDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	job, err := h.jobUC.GetWithCompany(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}
