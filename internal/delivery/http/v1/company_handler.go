package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/delivery/http/response"
	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/domain"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/apperror"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
	appUC     domain.ApplicationUsecase
}

func NewCompanyHandler(public, protected, directory, view *gin.RouterGroup, companyUC domain.CompanyUsecase, appUC domain.ApplicationUsecase) {
	handler := &CompanyHandler{companyUC: companyUC, appUC: appUC}

	// PUBLIC routes - no authentication required
	public.POST("/recruiter-registration", handler.Register)
	public.POST("/recruiter-login", handler.Login)

	// PROTECTED routes - company token required
	protected.GET("/company", handler.Me)
	protected.PUT("/company-update", handler.Update)
	protected.DELETE("/company", handler.Delete)

	// Public company directory
	directory.GET("/companyData", handler.List)

	// Applications received across the company's jobs
	view.GET("/applications", handler.ListApplications)
}

// Register godoc
// @Summary      Register a recruiter
// @Description  Create a company account with an optional logo image
// @Tags         companies
// @Accept       multipart/form-data
// @Produce      json
// @Param        name      formData  string  true   "Company name"
// @Param        email     formData  string  true   "Email address"
// @Param        password  formData  string  true   "Password (min 8 chars)"
// @Param        image     formData  file    false  "Company logo"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /companydata/recruiter-registration [post]
func (h *CompanyHandler) Register(c *gin.Context) {
	image, err := formUpload(c, "image")
	if err != nil {
		c.Error(err)
		return
	}

	input := domain.RegisterCompanyInput{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Image:    image,
	}

	company, tok, err := h.companyUC.Register(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Auth(c, http.StatusCreated, "Company registered successfully", tok, "company", company)
}

// Login godoc
// @Summary      Log in a recruiter
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        credentials  body      loginRequest  true  "Credentials"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /companydata/recruiter-login [post]
func (h *CompanyHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Email and password are required"))
		return
	}

	company, tok, err := h.companyUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Auth(c, http.StatusOK, "Login successful", tok, "company", company)
}

// Me godoc
// @Summary      Get the authenticated company
// @Tags         companies
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /companydata/company [get]
// @Security     BearerAuth
func (h *CompanyHandler) Me(c *gin.Context) {
	companyID := c.GetInt64(string(domain.KeyAccountID))

	company, err := h.companyUC.Get(c.Request.Context(), companyID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company data", company)
}

// Update godoc
// @Summary      Update the authenticated company's profile
// @Description  Replace name, password and/or logo. A replaced store-hosted
// @Description  logo is deleted after the new one is stored.
// @Tags         companies
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /companydata/company-update [put]
// @Security     BearerAuth
func (h *CompanyHandler) Update(c *gin.Context) {
	companyID := c.GetInt64(string(domain.KeyAccountID))

	image, err := formUpload(c, "image")
	if err != nil {
		c.Error(err)
		return
	}

	input := domain.UpdateCompanyInput{
		Name:     c.PostForm("name"),
		Password: c.PostForm("password"),
		Image:    image,
	}

	company, err := h.companyUC.UpdateProfile(c.Request.Context(), companyID, input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company updated successfully", company)
}

// Delete godoc
// @Summary      Delete the authenticated company
// @Description  Removes the company, its stored logo, and every job it owns,
// @Description  then applies the configured application cascade policy.
// @Tags         companies
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /companydata/company [delete]
// @Security     BearerAuth
func (h *CompanyHandler) Delete(c *gin.Context) {
	companyID := c.GetInt64(string(domain.KeyAccountID))

	if err := h.companyUC.Delete(c.Request.Context(), companyID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company deleted successfully", nil)
}

// List godoc
// @Summary      List all companies
// @Tags         companies
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /companydatas/companyData [get]
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "All companies", companies)
}

// ListApplications godoc
// @Summary      List applications received by the company
// @Description  Applications across all of the authenticated company's jobs
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /view/applications [get]
// @Security     BearerAuth
func (h *CompanyHandler) ListApplications(c *gin.Context) {
	companyID := c.GetInt64(string(domain.KeyAccountID))

	apps, err := h.appUC.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company applications", apps)
}
