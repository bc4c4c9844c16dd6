package user

import (
	"errors"
	"net/http"

	"BaziMeta/cmn"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthMiddleware 用户认证中间件
// 验证用户是否已登录，并将用户信息存储到上下文中
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取session
		session, err := sessionStore.Get(c.Request, userSessionKey)
		if err != nil {
			z.Error("failed to get session", zap.Error(err))
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: 401,
				Msg:    "未登录或登录已过期",
			})
			c.Abort()
			return
		}

		// 检查session中是否有用户ID
		userIdStr, ok := session.Values["user_id"].(string)
		if !ok || userIdStr == "" {
			z.Error("user_id not found in session")
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: 401,
				Msg:    "未登录或登录已过期",
			})
			c.Abort()
			return
		}

		// 解析用户ID
		userId, err := uuid.Parse(userIdStr)
		if err != nil {
			z.Error("invalid user_id in session", zap.Error(err), zap.String("user_id", userIdStr))
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: 401,
				Msg:    "用户信息无效",
			})
			c.Abort()
			return
		}

		// 从数据库查询用户信息
		var user cmn.TUser
		err = cmn.GormDB.Where("id = ?", userId).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				z.Error("user not found", zap.String("user_id", userIdStr))
				c.JSON(http.StatusOK, cmn.ReplyProto{
					Status: 401,
					Msg:    "用户不存在",
				})
				c.Abort()
				return
			}
			z.Error("failed to query user", zap.Error(err), zap.String("user_id", userIdStr))
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: -1,
				Msg:    "查询用户信息失败",
			})
			c.Abort()
			return
		}

		// 检查用户状态
		if user.Status != "00" {
			z.Error("user is disabled", zap.String("user_id", userIdStr), zap.String("status", user.Status))
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: 403,
				Msg:    "用户已被禁用",
			})
			c.Abort()
			return
		}

		// 将用户信息存储到上下文中，供后续处理器使用
		c.Set("current_user", user)
		c.Set("user_id", user.Id.String())
		c.Set("mobile_phone", user.MobilePhone)

		// 继续处理请求
		c.Next()
	}
}

// GetCurrentUser 从上下文中获取当前登录用户信息
// 该函数需要在AuthMiddleware之后使用
func GetCurrentUser(c *gin.Context) (*cmn.TUser, bool) {
	user, exists := c.Get("current_user")
	if !exists {
		return nil, false
	}

	currentUser, ok := user.(cmn.TUser)
	if !ok {
		return nil, false
	}

	return &currentUser, true
}

// GetCurrentUserID 从上下文中获取当前登录用户ID
func GetCurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := userIDStr.(string)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

// GetCurrentUserPhone 从上下文中获取当前登录用户手机号
// 该函数需要在AuthMiddleware之后使用
func GetCurrentUserPhone(c *gin.Context) (string, bool) {
	phone, exists := c.Get("mobile_phone")
	if !exists {
		return "", false
	}

	phoneStr, ok := phone.(string)
	if !ok {
		return "", false
	}

	return phoneStr, true
}
