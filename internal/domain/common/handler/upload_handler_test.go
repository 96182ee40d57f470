package handler

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"canvas_blog/internal/domain/post/model"
	"canvas_blog/internal/domain/post/repository"
	"canvas_blog/internal/pkg/uploader"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeUploader struct {
	fail map[string]bool
}

func (f *fakeUploader) UploadFile(fh *multipart.FileHeader) (string, error) {
	if f.fail[fh.Filename] {
		return "", errors.New("oss unavailable")
	}
	return "https://cdn.test/" + fh.Filename, nil
}

func newUploadRouter(t *testing.T, fake *fakeUploader) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Attachment{}))

	prev := uploader.GlobalUploader
	uploader.GlobalUploader = fake
	t.Cleanup(func() { uploader.GlobalUploader = prev })

	r := gin.New()
	h := NewUploadHandler(repository.NewPostRepository(db))
	r.POST("/upload", h.UploadFiles)
	r.DELETE("/upload/:name", h.DeleteAttachment)
	return r, db
}

func multipartBody(t *testing.T, names ...string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, name := range names {
		fw, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("payload"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUploadFiles_RegistersAttachmentsInOrder(t *testing.T) {
	r, db := newUploadRouter(t, &fakeUploader{})

	body, contentType := multipartBody(t, "a.png", "b.png")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var atts []model.Attachment
	require.NoError(t, db.Order("created_at, id").Find(&atts).Error)
	require.Len(t, atts, 2)
	assert.Equal(t, "a.png", atts[0].Name)
	assert.Equal(t, "https://cdn.test/a.png", atts[0].URL)
	assert.Equal(t, "b.png", atts[1].Name)
}

func TestUploadFiles_PartialFailureRegistersNothing(t *testing.T) {
	r, db := newUploadRouter(t, &fakeUploader{fail: map[string]bool{"b.png": true}})

	body, contentType := multipartBody(t, "a.png", "b.png", "c.png")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var count int64
	require.NoError(t, db.Model(&model.Attachment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestUploadFiles_EmptyForm(t *testing.T) {
	r, _ := newUploadRouter(t, &fakeUploader{})

	body, contentType := multipartBody(t)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteAttachment_ByName(t *testing.T) {
	r, db := newUploadRouter(t, &fakeUploader{})

	att := model.Attachment{Name: "a.png", URL: "https://cdn.test/a.png"}
	require.NoError(t, db.Create(&att).Error)

	req := httptest.NewRequest(http.MethodDelete, "/upload/a.png", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, db.Model(&model.Attachment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
