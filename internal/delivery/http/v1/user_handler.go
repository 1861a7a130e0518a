package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/delivery/http/response"
	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/domain"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/apperror"
)

type UserHandler struct {
	userUC domain.UserUsecase
	appUC  domain.ApplicationUsecase
}

func NewUserHandler(public, protected, directory *gin.RouterGroup, userUC domain.UserUsecase, appUC domain.ApplicationUsecase) {
	handler := &UserHandler{userUC: userUC, appUC: appUC}

	// PUBLIC routes - no authentication required
	public.POST("/userRegistration", handler.Register)
	public.POST("/userLogin", handler.Login)

	// PROTECTED routes - user token required
	protected.GET("/userid", handler.Me)
	protected.POST("/userUpdate", handler.Update)
	protected.DELETE("/userDelete/:id", handler.Delete)
	protected.POST("/apply-job", handler.ApplyJob)
	protected.GET("/user-applications", handler.ListApplications)

	// Public user directory
	directory.GET("/getallusers", handler.List)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type applyJobRequest struct {
	JobID int64 `json:"jobId" binding:"required"`
}

// Register godoc
// @Summary      Register a job seeker
// @Description  Create a user account with optional profile image and resume
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        name      formData  string  true   "Full name"
// @Param        email     formData  string  true   "Email address"
// @Param        password  formData  string  true   "Password (min 8 chars)"
// @Param        image     formData  file    false  "Profile image"
// @Param        resume    formData  file    false  "Resume (PDF/Word)"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /userdetails/userRegistration [post]
func (h *UserHandler) Register(c *gin.Context) {
	image, err := formUpload(c, "image")
	if err != nil {
		c.Error(err)
		return
	}
	resume, err := formUpload(c, "resume")
	if err != nil {
		c.Error(err)
		return
	}

	input := domain.RegisterUserInput{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Image:    image,
		Resume:   resume,
	}

	user, tok, err := h.userUC.Register(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Auth(c, http.StatusCreated, "User registered successfully", tok, "user", user)
}

// Login godoc
// @Summary      Log in a job seeker
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        credentials  body      loginRequest  true  "Credentials"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /userdetails/userLogin [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Email and password are required"))
		return
	}

	user, tok, err := h.userUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Auth(c, http.StatusOK, "Login successful", tok, "user", user)
}

// Me godoc
// @Summary      Get the authenticated user
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /userdetails/userid [get]
// @Security     BearerAuth
func (h *UserHandler) Me(c *gin.Context) {
	userID := c.GetInt64(string(domain.KeyAccountID))

	user, err := h.userUC.Get(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User data", user)
}

// Update godoc
// @Summary      Update the authenticated user's profile
// @Description  Replace name, password, image and/or resume. New attachments
// @Description  replace the old ones; replaced store-hosted files are deleted.
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /userdetails/userUpdate [post]
// @Security     BearerAuth
func (h *UserHandler) Update(c *gin.Context) {
	userID := c.GetInt64(string(domain.KeyAccountID))

	image, err := formUpload(c, "image")
	if err != nil {
		c.Error(err)
		return
	}
	resume, err := formUpload(c, "resume")
	if err != nil {
		c.Error(err)
		return
	}

	input := domain.UpdateUserInput{
		Name:     c.PostForm("name"),
		Password: c.PostForm("password"),
		Image:    image,
		Resume:   resume,
	}

	user, err := h.userUC.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", user)
}

// Delete godoc
// @Summary      Delete a user account
// @Description  Removes the account, releases its stored attachments, and
// @Description  applies the configured application cascade policy.
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /userdetails/userDelete/{id} [delete]
// @Security     BearerAuth
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	// Users may only delete their own account.
	if id != c.GetInt64(string(domain.KeyAccountID)) {
		c.Error(apperror.Forbidden("Unauthorized access"))
		return
	}

	if err := h.userUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User deleted successfully", nil)
}

// ApplyJob godoc
// @Summary      Apply to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application  body      applyJobRequest  true  "Job reference"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /userdetails/apply-job [post]
// @Security     BearerAuth
func (h *UserHandler) ApplyJob(c *gin.Context) {
	var req applyJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("jobId is required"))
		return
	}

	userID := c.GetInt64(string(domain.KeyAccountID))

	if _, err := h.appUC.Apply(c.Request.Context(), userID, req.JobID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applied Successfully", nil)
}

// ListApplications godoc
// @Summary      List the authenticated user's applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /userdetails/user-applications [get]
// @Security     BearerAuth
func (h *UserHandler) ListApplications(c *gin.Context) {
	userID := c.GetInt64(string(domain.KeyAccountID))

	apps, err := h.appUC.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User applications", apps)
}

// List godoc
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /userdata/getallusers [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.SuccessCount(c, http.StatusOK, "All users", len(users), users)
}
