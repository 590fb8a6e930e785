package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/handler"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/mocks"
)

func newEvidenceHandler() (*handler.EvidenceHandler, *mocks.MockEvidenceService) {
	svc := new(mocks.MockEvidenceService)
	return handler.NewEvidenceHandler(svc), svc
}

func multipartContext(t *testing.T, field, filename string, data []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/", &buf)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	return c, w
}

func TestEvidenceHandler_Upload_Success(t *testing.T) {
	h, svc := newEvidenceHandler()
	userID, incidentID := uuid.New(), uuid.New()

	svc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.EvidenceUploadInput) bool {
		return in.IncidentID == incidentID && in.UploadedBy == userID &&
			in.Header.Filename == "pallet.png" && in.File != nil
	})).Return(&domain.Evidence{ID: uuid.New(), IncidentID: incidentID, Status: domain.EvidenceStatusUploaded}, nil)

	c, w := multipartContext(t, "file", "pallet.png", []byte("\x89PNG\r\n\x1a\n"))
	c.Params = gin.Params{{Key: "id", Value: incidentID.String()}}
	setAuthContext(c, userID, domain.RoleOperator)

	h.Upload(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestEvidenceHandler_Upload_MissingFile(t *testing.T) {
	h, svc := newEvidenceHandler()

	c, w := multipartContext(t, "attachment", "pallet.png", []byte("x"))
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	setAuthContext(c, uuid.New(), domain.RoleOperator)

	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decodeError(t, w).Error.Code)
	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestEvidenceHandler_Upload_Rejected(t *testing.T) {
	h, svc := newEvidenceHandler()
	svc.On("Upload", mock.Anything, mock.Anything).Return(nil, domain.ErrUnsupportedFileType)

	c, w := multipartContext(t, "file", "notes.txt", []byte("plain text"))
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	setAuthContext(c, uuid.New(), domain.RoleOperator)

	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", decodeError(t, w).Error.Code)
}

func TestEvidenceHandler_Download(t *testing.T) {
	h, svc := newEvidenceHandler()
	evidenceID := uuid.New()
	svc.On("GetDownloadURL", mock.Anything, evidenceID).Return("https://bucket/signed", nil)

	c, w := newContext(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: evidenceID.String()}}

	h.Download(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://bucket/signed")
}

func TestEvidenceHandler_Delete_NotFound(t *testing.T) {
	h, svc := newEvidenceHandler()
	evidenceID := uuid.New()
	svc.On("Delete", mock.Anything, evidenceID).Return(domain.ErrEvidenceNotFound)

	c, w := newContext(http.MethodDelete, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: evidenceID.String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
