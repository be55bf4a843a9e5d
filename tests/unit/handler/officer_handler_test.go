package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"civicfix/internal/config"
	"civicfix/internal/domain"
	"civicfix/internal/handler"
	"civicfix/internal/service"
	"civicfix/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testS3Config() config.S3Config {
	return config.S3Config{Bucket: "test-bucket", MaxFileSizeMB: 10}
}

// registrationForm builds a multipart officer registration request.
func registrationForm(t *testing.T, filename string, content []byte, omitFile bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	_ = w.WriteField("name", "Asha Verma")
	_ = w.WriteField("email", "asha.verma@example.gov")
	_ = w.WriteField("phone", "+91-9876543210")
	_ = w.WriteField("department", "Sanitation")
	_ = w.WriteField("designation", "Field Inspector")

	if !omitFile {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="document"; filename="`+filename+`"`)
		h.Set("Content-Type", "application/octet-stream")
		part, err := w.CreatePart(h)
		assert.NoError(t, err)
		_, _ = part.Write(content)
	}
	w.Close()
	return body, w.FormDataContentType()
}

func pdfContent() []byte {
	return []byte("%PDF-1.4 test content that is long enough for content sniffing")
}

func newOfficerRouter(onboarding *mocks.MockOnboardingService) *gin.Engine {
	cfg := testS3Config()
	h := handler.NewOfficerHandler(onboarding, &cfg)
	r := gin.New()
	r.POST("/api/v1/officers/register", h.Register)
	return r
}

func TestOfficerRegister_Success(t *testing.T) {
	onboarding := new(mocks.MockOnboardingService)

	var staged service.OnboardingInput
	onboarding.On("Register", mock.Anything, mock.AnythingOfType("service.OnboardingInput")).
		Run(func(args mock.Arguments) {
			staged = args.Get(1).(service.OnboardingInput)
			// The pipeline owns the temp file; mimic its cleanup.
			_ = os.Remove(staged.Document.Path)
		}).
		Return(&domain.User{
			ID:            uuid.New(),
			Name:          "Asha Verma",
			Role:          domain.RoleOfficer,
			AccountStatus: domain.AccountStatusActive,
		}, nil)

	body, contentType := registrationForm(t, "id-proof.pdf", pdfContent(), false)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/officers/register", body)
	req.Header.Set("Content-Type", contentType)
	newOfficerRouter(onboarding).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "asha.verma@example.gov", staged.Email)
	assert.Equal(t, "Sanitation", staged.Department)
	assert.Equal(t, "id-proof.pdf", staged.Document.OriginalName)
	assert.Equal(t, "application/pdf", staged.Document.ContentType)
	assert.NotEmpty(t, staged.Document.Path)
}

func TestOfficerRegister_MissingDocument(t *testing.T) {
	onboarding := new(mocks.MockOnboardingService)

	body, contentType := registrationForm(t, "", nil, true)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/officers/register", body)
	req.Header.Set("Content-Type", contentType)
	newOfficerRouter(onboarding).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	onboarding.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestOfficerRegister_UnsupportedExtension(t *testing.T) {
	onboarding := new(mocks.MockOnboardingService)

	body, contentType := registrationForm(t, "malware.exe", []byte("MZ..."), false)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/officers/register", body)
	req.Header.Set("Content-Type", contentType)
	newOfficerRouter(onboarding).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.False(t, resp.Success)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", resp.Error.Code)
}

func TestOfficerRegister_ContentMismatchRejected(t *testing.T) {
	onboarding := new(mocks.MockOnboardingService)

	// .pdf extension but HTML bytes inside
	body, contentType := registrationForm(t, "proof.pdf", []byte("<html><body>not a pdf at all</body></html>"), false)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/officers/register", body)
	req.Header.Set("Content-Type", contentType)
	newOfficerRouter(onboarding).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	onboarding.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestOfficerRegister_DomainErrorsMapped(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{"duplicate applicant", domain.ErrDuplicateApplicant, http.StatusConflict, "DUPLICATE_APPLICANT"},
		{"unreadable document", domain.ErrUnreadableDocument, http.StatusUnprocessableEntity, "UNREADABLE_DOCUMENT"},
		{"storage down", domain.ErrStorageUnavailable, http.StatusInternalServerError, "UPLOAD_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			onboarding := new(mocks.MockOnboardingService)
			onboarding.On("Register", mock.Anything, mock.AnythingOfType("service.OnboardingInput")).
				Run(func(args mock.Arguments) {
					in := args.Get(1).(service.OnboardingInput)
					_ = os.Remove(in.Document.Path)
				}).
				Return(nil, tt.svcErr)

			body, contentType := registrationForm(t, "id-proof.pdf", pdfContent(), false)
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/api/v1/officers/register", body)
			req.Header.Set("Content-Type", contentType)
			newOfficerRouter(onboarding).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp handler.APIResponse
			_ = json.Unmarshal(w.Body.Bytes(), &resp)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestOfficerRegister_MissingRequiredFields(t *testing.T) {
	onboarding := new(mocks.MockOnboardingService)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	_ = w.WriteField("name", "Asha Verma")
	w.Close()

	rec := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/officers/register", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	newOfficerRouter(onboarding).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	onboarding.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}
