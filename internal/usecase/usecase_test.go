package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/CodeWithNorayr/job-portal-platform-backend/config"
	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/domain"
	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/usecase"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/token"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Fetch(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) Create(ctx context.Context, company *domain.Company) error {
	return m.Called(ctx, company).Error(0)
}
func (m *MockCompanyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}
func (m *MockCompanyRepo) GetByEmail(ctx context.Context, email string) (*domain.Company, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}
func (m *MockCompanyRepo) Fetch(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Company), args.Error(1)
}
func (m *MockCompanyRepo) Update(ctx context.Context, company *domain.Company) error {
	return m.Called(ctx, company).Error(0)
}
func (m *MockCompanyRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) GetByIDWithCompany(ctx context.Context, id int64) (*domain.JobWithCompany, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobWithCompany), args.Error(1)
}
func (m *MockJobRepo) FetchVisible(ctx context.Context) ([]domain.JobWithCompany, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.JobWithCompany), args.Error(1)
}
func (m *MockJobRepo) FetchByCompanyID(ctx context.Context, companyID int64) ([]domain.Job, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockJobRepo) DeleteByCompanyID(ctx context.Context, companyID int64) ([]int64, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.JobApplication) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) Exists(ctx context.Context, userID, jobID int64) (bool, error) {
	args := m.Called(ctx, userID, jobID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) FetchByUserID(ctx context.Context, userID int64) ([]domain.JobApplication, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.JobApplication), args.Error(1)
}
func (m *MockApplicationRepo) FetchByCompanyID(ctx context.Context, companyID int64) ([]domain.JobApplication, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]domain.JobApplication), args.Error(1)
}
func (m *MockApplicationRepo) DeleteByJobIDs(ctx context.Context, jobIDs []int64) error {
	return m.Called(ctx, jobIDs).Error(0)
}
func (m *MockApplicationRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockApplicationRepo) DetachJobs(ctx context.Context, jobIDs []int64) error {
	return m.Called(ctx, jobIDs).Error(0)
}
func (m *MockApplicationRepo) DetachUser(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}
func (m *MockStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
func (m *MockStore) Owns(rawURL string) bool {
	return m.Called(rawURL).Bool(0)
}

type MockLifecycle struct {
	mock.Mock
}

func (m *MockLifecycle) Stage(ctx context.Context, kind domain.AccountKind, field domain.AttachmentField, up *domain.Upload) (*domain.AttachmentRef, error) {
	args := m.Called(ctx, kind, field, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttachmentRef), args.Error(1)
}
func (m *MockLifecycle) Release(ctx context.Context, ref domain.AttachmentRef) {
	m.Called(ctx, ref)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTokens() *token.Issuer {
	return token.NewIssuer("test-secret")
}

func strPtr(s string) *string { return &s }

// pngBytes is a minimal payload carrying the PNG magic header. The decode
// step fails on it, so staging falls back to storing the bytes as-is.
var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}

func TestUserRegister(t *testing.T) {
	t.Run("Should reject duplicate email with conflict", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockApplicationRepo), new(MockLifecycle), testTokens(), validator.New(), config.CascadePreserve)

		userRepo.On("GetByEmail", mock.Anything, "taken@x.com").Return(&domain.User{ID: 1, Email: "taken@x.com"}, nil)

		_, _, err := uc.Register(context.Background(), domain.RegisterUserInput{
			Name: "Jo", Email: "taken@x.com", Password: "longenough1",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject password shorter than 8 characters", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockApplicationRepo), new(MockLifecycle), testTokens(), validator.New(), config.CascadePreserve)

		_, _, err := uc.Register(context.Background(), domain.RegisterUserInput{
			Name: "Jo", Email: "jo@x.com", Password: "short",
		})
		assert.Error(t, err)
		userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Should register and issue a verifiable token", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockApplicationRepo), new(MockLifecycle), testTokens(), validator.New(), config.CascadePreserve)

		userRepo.On("GetByEmail", mock.Anything, "jo@x.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 42
		})

		user, tok, err := uc.Register(context.Background(), domain.RegisterUserInput{
			Name: "Jo", Email: "jo@x.com", Password: "longenough1",
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, tok)
		assert.NotEqual(t, "longenough1", user.PasswordHash)

		claims, err := testTokens().Verify(tok)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), claims.AccountID)
		assert.Equal(t, token.KindUser, claims.Kind)
	})
}

func TestUserLogin(t *testing.T) {
	t.Run("Should not reveal whether the email exists", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(userRepo, new(MockApplicationRepo), new(MockLifecycle), testTokens(), validator.New(), config.CascadePreserve)

		userRepo.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, domain.ErrNotFound)

		_, _, err := uc.Login(context.Background(), "ghost@x.com", "whatever123")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})
}

func TestUserUpdateReplacesAttachment(t *testing.T) {
	t.Run("Should stage the new image before releasing the old one", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		lifecycle := new(MockLifecycle)
		uc := usecase.NewUserUsecase(userRepo, new(MockApplicationRepo), lifecycle, testTokens(), validator.New(), config.CascadePreserve)

		userRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{
			ID:       7,
			Name:     "Jo",
			Image:    strPtr("https://bucket.s3.us-east-1.amazonaws.com/users/images/1-old"),
			ImageKey: strPtr("users/images/1-old"),
		}, nil)

		staged := false
		lifecycle.On("Stage", mock.Anything, domain.AccountKindUser, domain.FieldImage, mock.Anything).
			Return(&domain.AttachmentRef{URL: "https://bucket.s3.us-east-1.amazonaws.com/users/images/2-new", Key: "users/images/2-new"}, nil).
			Run(func(mock.Arguments) { staged = true })
		lifecycle.On("Release", mock.Anything, domain.AttachmentRef{
			URL: "https://bucket.s3.us-east-1.amazonaws.com/users/images/1-old",
			Key: "users/images/1-old",
		}).Run(func(mock.Arguments) {
			assert.True(t, staged, "old attachment released before new one was staged")
		})
		userRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := uc.UpdateProfile(context.Background(), 7, domain.UpdateUserInput{
			Image: &domain.Upload{Filename: "new.png", ContentType: "image/png", Data: pngBytes},
		})
		assert.NoError(t, err)
		assert.Equal(t, "users/images/2-new", *user.ImageKey)
		lifecycle.AssertNumberOfCalls(t, "Release", 1)
	})

	t.Run("Should not release anything when the field was empty", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		lifecycle := new(MockLifecycle)
		uc := usecase.NewUserUsecase(userRepo, new(MockApplicationRepo), lifecycle, testTokens(), validator.New(), config.CascadePreserve)

		userRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, Name: "Jo"}, nil)
		lifecycle.On("Stage", mock.Anything, domain.AccountKindUser, domain.FieldResume, mock.Anything).
			Return(&domain.AttachmentRef{URL: "https://x/users/resumes/3-cv", Key: "users/resumes/3-cv"}, nil)
		userRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		_, err := uc.UpdateProfile(context.Background(), 7, domain.UpdateUserInput{
			Resume: &domain.Upload{Filename: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")},
		})
		assert.NoError(t, err)
		lifecycle.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
	})
}

func TestUserDelete(t *testing.T) {
	user := func() *domain.User {
		return &domain.User{
			ID:        9,
			Image:     strPtr("https://x/users/images/1-a"),
			ImageKey:  strPtr("users/images/1-a"),
			Resume:    strPtr("https://x/users/resumes/2-b"),
			ResumeKey: strPtr("users/resumes/2-b"),
		}
	}

	t.Run("Should release each populated attachment exactly once", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		lifecycle := new(MockLifecycle)
		uc := usecase.NewUserUsecase(userRepo, new(MockApplicationRepo), lifecycle, testTokens(), validator.New(), config.CascadePreserve)

		userRepo.On("GetByID", mock.Anything, int64(9)).Return(user(), nil)
		lifecycle.On("Release", mock.Anything, mock.Anything)
		userRepo.On("Delete", mock.Anything, int64(9)).Return(nil)

		assert.NoError(t, uc.Delete(context.Background(), 9))
		lifecycle.AssertNumberOfCalls(t, "Release", 2)
	})

	t.Run("Preserve policy leaves applications untouched", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewUserUsecase(userRepo, appRepo, new(MockLifecycle), testTokens(), validator.New(), config.CascadePreserve)

		userRepo.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{ID: 9}, nil)
		userRepo.On("Delete", mock.Anything, int64(9)).Return(nil)

		assert.NoError(t, uc.Delete(context.Background(), 9))
		appRepo.AssertNotCalled(t, "DeleteByUserID", mock.Anything, mock.Anything)
		appRepo.AssertNotCalled(t, "DetachUser", mock.Anything, mock.Anything)
	})

	t.Run("Anonymize policy detaches the user reference", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewUserUsecase(userRepo, appRepo, new(MockLifecycle), testTokens(), validator.New(), config.CascadeAnonymize)

		userRepo.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{ID: 9}, nil)
		appRepo.On("DetachUser", mock.Anything, int64(9)).Return(nil)
		userRepo.On("Delete", mock.Anything, int64(9)).Return(nil)

		assert.NoError(t, uc.Delete(context.Background(), 9))
		appRepo.AssertCalled(t, "DetachUser", mock.Anything, int64(9))
	})
}

func TestCompanyDeleteCascade(t *testing.T) {
	company := &domain.Company{
		ID:       3,
		Image:    strPtr("https://x/companies/images/1-logo"),
		ImageKey: strPtr("companies/images/1-logo"),
	}

	t.Run("Should delete owned jobs and preserve their applications by default", func(t *testing.T) {
		companyRepo := new(MockCompanyRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		lifecycle := new(MockLifecycle)
		uc := usecase.NewCompanyUsecase(companyRepo, jobRepo, appRepo, lifecycle, testTokens(), validator.New(), config.CascadePreserve)

		companyRepo.On("GetByID", mock.Anything, int64(3)).Return(company, nil)
		lifecycle.On("Release", mock.Anything, mock.Anything)
		jobRepo.On("DeleteByCompanyID", mock.Anything, int64(3)).Return([]int64{10, 11}, nil)
		companyRepo.On("Delete", mock.Anything, int64(3)).Return(nil)

		assert.NoError(t, uc.Delete(context.Background(), 3))
		jobRepo.AssertCalled(t, "DeleteByCompanyID", mock.Anything, int64(3))
		appRepo.AssertNotCalled(t, "DeleteByJobIDs", mock.Anything, mock.Anything)
		appRepo.AssertNotCalled(t, "DetachJobs", mock.Anything, mock.Anything)
	})

	t.Run("Cascade policy removes applications of deleted jobs", func(t *testing.T) {
		companyRepo := new(MockCompanyRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewCompanyUsecase(companyRepo, jobRepo, appRepo, new(MockLifecycle), testTokens(), validator.New(), config.CascadeDelete)

		companyRepo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Company{ID: 3}, nil)
		jobRepo.On("DeleteByCompanyID", mock.Anything, int64(3)).Return([]int64{10, 11}, nil)
		appRepo.On("DeleteByJobIDs", mock.Anything, []int64{10, 11}).Return(nil)
		companyRepo.On("Delete", mock.Anything, int64(3)).Return(nil)

		assert.NoError(t, uc.Delete(context.Background(), 3))
		appRepo.AssertCalled(t, "DeleteByJobIDs", mock.Anything, []int64{10, 11})
	})

	t.Run("No policy call when the company had no jobs", func(t *testing.T) {
		companyRepo := new(MockCompanyRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewCompanyUsecase(companyRepo, jobRepo, appRepo, new(MockLifecycle), testTokens(), validator.New(), config.CascadeDelete)

		companyRepo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Company{ID: 3}, nil)
		jobRepo.On("DeleteByCompanyID", mock.Anything, int64(3)).Return([]int64{}, nil)
		companyRepo.On("Delete", mock.Anything, int64(3)).Return(nil)

		assert.NoError(t, uc.Delete(context.Background(), 3))
		appRepo.AssertNotCalled(t, "DeleteByJobIDs", mock.Anything, mock.Anything)
	})
}

func TestJobOwnership(t *testing.T) {
	t.Run("Should forbid updating another company's job", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Job{ID: 5, CompanyID: 99}, nil)

		_, err := uc.Update(context.Background(), 1, 5, domain.UpdateJobInput{Title: "New"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Unauthorized access")
		jobRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Should return not found for a missing job", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(5)).Return(nil, domain.ErrNotFound)

		err := uc.Delete(context.Background(), 1, 5)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Job not found")
	})

	t.Run("Toggle flips visibility and persists it", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Job{ID: 5, CompanyID: 1, Visible: true}, nil)
		jobRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil).Run(func(args mock.Arguments) {
			assert.False(t, args.Get(1).(*domain.Job).Visible)
		})

		visible, err := uc.ToggleVisibility(context.Background(), 1, 5)
		assert.NoError(t, err)
		assert.False(t, visible)
	})
}

func TestJobCreateDefaults(t *testing.T) {
	jobRepo := new(MockJobRepo)
	uc := usecase.NewJobUsecase(jobRepo)

	t.Run("New jobs are visible and stamped with the posting company", func(t *testing.T) {
		jobRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil)

		job := &domain.Job{Title: "Dev", Description: "desc", Location: "Remote", Category: "IT", Level: "Junior", Salary: 50000}
		err := uc.Create(context.Background(), 2, job)
		assert.NoError(t, err)
		assert.True(t, job.Visible)
		assert.Equal(t, int64(2), job.CompanyID)
		assert.False(t, job.Date.IsZero())
	})

	t.Run("Should reject missing required fields", func(t *testing.T) {
		err := uc.Create(context.Background(), 2, &domain.Job{Title: "Dev"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("Should reject negative salary", func(t *testing.T) {
		err := uc.Create(context.Background(), 2, &domain.Job{Title: "Dev", Description: "d", Location: "l", Category: "c", Level: "x", Salary: -1})
		assert.Error(t, err)
	})
}

func TestApplyJob(t *testing.T) {
	t.Run("Should conflict on a duplicate application before looking up the job", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		appRepo.On("Exists", mock.Anything, int64(1), int64(5)).Return(true, nil)

		_, err := uc.Apply(context.Background(), 1, 5)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Already applied")
		jobRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Should return not found for a nonexistent job", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		appRepo.On("Exists", mock.Anything, int64(1), int64(404)).Return(false, nil)
		jobRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, domain.ErrNotFound)

		_, err := uc.Apply(context.Background(), 1, 404)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Job not found")
	})

	t.Run("Should denormalize the job's company onto the application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		appRepo.On("Exists", mock.Anything, int64(1), int64(5)).Return(false, nil)
		jobRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Job{ID: 5, CompanyID: 77}, nil)
		appRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.JobApplication")).Return(nil)

		app, err := uc.Apply(context.Background(), 1, 5)
		assert.NoError(t, err)
		assert.Equal(t, int64(77), *app.CompanyID)
	})

	t.Run("Should conflict when a concurrent apply hits the unique index", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		appRepo.On("Exists", mock.Anything, int64(1), int64(5)).Return(false, nil)
		jobRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Job{ID: 5, CompanyID: 77}, nil)
		appRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		_, err := uc.Apply(context.Background(), 1, 5)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Already applied")
	})
}

func TestAttachmentStage(t *testing.T) {
	t.Run("Should reject an executable posing as an image before storage", func(t *testing.T) {
		store := new(MockStore)
		lc := usecase.NewAttachmentLifecycle(store, testLogger())

		_, err := lc.Stage(context.Background(), domain.AccountKindUser, domain.FieldImage, &domain.Upload{
			Filename:    "malware.exe",
			ContentType: "application/octet-stream",
			Data:        []byte{0x4D, 0x5A, 0x90, 0x00},
		})
		assert.Error(t, err)
		store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject a payload whose magic bytes contradict the declared type", func(t *testing.T) {
		store := new(MockStore)
		lc := usecase.NewAttachmentLifecycle(store, testLogger())

		_, err := lc.Stage(context.Background(), domain.AccountKindUser, domain.FieldImage, &domain.Upload{
			Filename:    "fake.png",
			ContentType: "image/png",
			Data:        []byte("MZ executable bytes"),
		})
		assert.Error(t, err)
		store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should build the key from account kind, field, and sanitized stem", func(t *testing.T) {
		store := new(MockStore)
		lc := usecase.NewAttachmentLifecycle(store, testLogger())

		store.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "users/images/") && strings.HasSuffix(key, "-my_profile_pic")
		}), mock.Anything, mock.Anything).Return("https://x/users/images/1-my_profile_pic", nil)

		ref, err := lc.Stage(context.Background(), domain.AccountKindUser, domain.FieldImage, &domain.Upload{
			Filename:    "my profile pic!.png",
			ContentType: "image/png",
			Data:        pngBytes,
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, ref.Key)
		assert.Equal(t, "https://x/users/images/1-my_profile_pic", ref.URL)
	})

	t.Run("Resumes accept PDF but not images", func(t *testing.T) {
		store := new(MockStore)
		lc := usecase.NewAttachmentLifecycle(store, testLogger())

		_, err := lc.Stage(context.Background(), domain.AccountKindUser, domain.FieldResume, &domain.Upload{
			Filename:    "cv.png",
			ContentType: "image/png",
			Data:        pngBytes,
		})
		assert.Error(t, err)

		store.On("Upload", mock.Anything, mock.Anything, "application/pdf", mock.Anything).Return("https://x/users/resumes/1-cv", nil)
		_, err = lc.Stage(context.Background(), domain.AccountKindUser, domain.FieldResume, &domain.Upload{
			Filename:    "cv.pdf",
			ContentType: "application/pdf",
			Data:        []byte("%PDF-1.7 content"),
		})
		assert.NoError(t, err)
	})
}

func TestAttachmentRelease(t *testing.T) {
	t.Run("Should skip URLs hosted outside the store", func(t *testing.T) {
		store := new(MockStore)
		lc := usecase.NewAttachmentLifecycle(store, testLogger())

		store.On("Owns", "https://elsewhere.example.com/avatar.png").Return(false)

		lc.Release(context.Background(), domain.AttachmentRef{URL: "https://elsewhere.example.com/avatar.png"})
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Should delete using the recorded key when present", func(t *testing.T) {
		store := new(MockStore)
		lc := usecase.NewAttachmentLifecycle(store, testLogger())

		store.On("Delete", mock.Anything, "users/images/1-pic").Return(nil)

		lc.Release(context.Background(), domain.AttachmentRef{
			URL: "https://x/users/images/1-pic",
			Key: "users/images/1-pic",
		})
		store.AssertCalled(t, "Delete", mock.Anything, "users/images/1-pic")
	})

	t.Run("Should reconstruct a key from legacy URLs without one", func(t *testing.T) {
		store := new(MockStore)
		lc := usecase.NewAttachmentLifecycle(store, testLogger())

		store.On("Owns", "https://bucket.s3.us-east-1.amazonaws.com/images/123-pic.png").Return(true)
		store.On("Delete", mock.Anything, "images/123-pic").Return(nil)

		lc.Release(context.Background(), domain.AttachmentRef{
			URL: "https://bucket.s3.us-east-1.amazonaws.com/images/123-pic.png",
		})
		store.AssertCalled(t, "Delete", mock.Anything, "images/123-pic")
	})

	t.Run("Delete failures are swallowed", func(t *testing.T) {
		store := new(MockStore)
		lc := usecase.NewAttachmentLifecycle(store, testLogger())

		store.On("Delete", mock.Anything, "users/images/1-pic").Return(assert.AnError)

		assert.NotPanics(t, func() {
			lc.Release(context.Background(), domain.AttachmentRef{URL: "https://x/1-pic", Key: "users/images/1-pic"})
		})
	})
}
