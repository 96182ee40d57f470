package handler

import (
	"net/http"

	"canvas_blog/internal/domain/user/service"
	"canvas_blog/internal/pkg/apperr"
	"canvas_blog/internal/pkg/middleware"
	"canvas_blog/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户 HTTP 入口
type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Nickname string `json:"nickname"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest 资料更新请求
type UpdateProfileRequest struct {
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
}

// Register 注册
// @Summary 注册新用户
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 200 {object} response.Response
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	user, err := h.userService.Register(req.Email, req.Password, req.Nickname)
	if err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, user)
}

// Login 登录
// @Summary 登录并签发 Token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} response.Response
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	token, user, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, gin.H{"token": token, "user": user})
}

// GetUser 用户资料
// @Summary 用户公开资料
// @Tags user
// @Produce json
// @Param id path string true "用户 ID"
// @Success 200 {object} response.Response
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Param("id"))
	if err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateProfile 更新自己的资料
// @Summary 更新昵称/头像
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	userID := middleware.CurrentUserID(c)
	user, err := h.userService.UpdateProfile(userID, req.Nickname, req.AvatarURL)
	if err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, user)
}
