package handler

import (
	"mime/multipart"
	"net/http"
	"sync"

	"canvas_blog/internal/domain/post/model"
	"canvas_blog/internal/domain/post/repository"
	"canvas_blog/internal/pkg/apperr"
	"canvas_blog/internal/pkg/uploader"
	"canvas_blog/pkg/response"

	"github.com/gin-gonic/gin"
)

// UploadHandler 带外文件上传
// 文件先传到对象存储并登记为附件，之后发帖时按名字或 URL 关联
type UploadHandler struct {
	posts repository.PostRepository
}

func NewUploadHandler(posts repository.PostRepository) *UploadHandler {
	return &UploadHandler{posts: posts}
}

// UploadFiles 上传文件 (支持批量)
// @Summary 上传文件到 OSS 并登记附件 (支持批量)
// @Tags Common
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /upload [post]
func (h *UploadHandler) UploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid form data")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "No files uploaded")
		return
	}

	if uploader.GlobalUploader == nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Uploader not initialized")
		return
	}

	// 结果和错误按提交顺序逐槽填充，协程之间不共享可变状态
	urls := make([]string, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup

	// 限制并发数为 5，避免过多协程
	sem := make(chan struct{}, 5)

	for i, file := range files {
		wg.Add(1)
		go func(index int, f *multipart.FileHeader) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			url, err := uploader.GlobalUploader.UploadFile(f)
			if err != nil {
				errs[index] = err
				return
			}
			urls[index] = url
		}(i, file)
	}

	wg.Wait()

	var uploadErr error
	for _, err := range errs {
		if err != nil {
			uploadErr = err
			break
		}
	}

	if uploadErr != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Upload failed: "+uploadErr.Error())
		return
	}

	// 上传全部成功后统一登记附件
	attachments := make([]model.Attachment, 0, len(files))
	for i, f := range files {
		att := model.Attachment{Name: f.Filename, URL: urls[i]}
		if err := h.posts.SaveAttachment(&att); err != nil {
			apperr.WriteResponse(c, err)
			return
		}
		attachments = append(attachments, att)
	}

	response.Success(c, attachments)
}

// DeleteAttachment 删除上传记录
// @Summary 按名字删除未使用的附件记录
// @Tags Common
// @Produce json
// @Param name path string true "文件名"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /upload/{name} [delete]
func (h *UploadHandler) DeleteAttachment(c *gin.Context) {
	att, err := h.posts.DeleteAttachmentByName(c.Param("name"))
	if err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, att)
}
