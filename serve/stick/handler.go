package stick

import (
	"encoding/json"
	"errors"
	"net/http"

	"BaziMeta/cmn"
	"BaziMeta/cmn/points_core"
	"BaziMeta/serve/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	HandleDrawStick(c *gin.Context)
	HandleQueryMyDraws(c *gin.Context)
	HandleReloadLots(c *gin.Context)
}

type handler struct {
}

func NewHandler() Handler {
	return &handler{}
}

// HandleDrawStick 处理抽签请求
func (h *handler) HandleDrawStick(c *gin.Context) {
	userId, ok := user.GetCurrentUserID(c)
	if !ok {
		z.Error("failed to get current userId from context")
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 401,
			Msg:    "未登录或登录已过期",
		})
		return
	}

	lot, err := machine.Draw(c, userId)
	if err != nil {
		switch {
		case errors.Is(err, ErrPoolEmpty):
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: 1,
				Msg:    "签池暂未开放，请稍后再来",
			})
		case errors.Is(err, ErrDailyLimitReached):
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: 1,
				Msg:    "今日抽签次数已用完，请明日再来",
			})
		case errors.Is(err, points_core.ErrInsufficientPoints):
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: 1,
				Msg:    "积分不足，无法抽签",
			})
		default:
			z.Error("failed to draw stick", zap.Error(err))
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: -1,
				Msg:    "抽签失败，请稍后再试",
			})
		}
		return
	}

	lotJson, err := json.Marshal(lot)
	if err != nil {
		z.Error("failed to marshal lot", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "抽签结果序列化失败",
		})
		return
	}

	c.JSON(http.StatusOK, cmn.ReplyProto{
		Status: 0,
		Msg:    "success",
		Data:   lotJson,
	})
	return
}

// HandleQueryMyDraws 分页查询当前用户的抽签记录
func (h *handler) HandleQueryMyDraws(c *gin.Context) {
	userId, ok := user.GetCurrentUserID(c)
	if !ok {
		z.Error("failed to get current user ID")
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 401,
			Msg:    "未登录或登录已过期",
		})
		return
	}

	var req cmn.ReqProto
	if err := c.ShouldBindJSON(&req); err != nil {
		z.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 1,
			Msg:    "请求参数错误，请检查是否符合请求协议",
		})
		return
	}

	page := req.Page
	if page < 0 {
		page = 0
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var total int64
	err := cmn.GormDB.Model(&cmn.TStickDrawLog{}).Where("user_id = ?", userId).Count(&total).Error
	if err != nil {
		z.Error("failed to count draw logs", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "查询抽签记录总数失败",
		})
		return
	}

	var draws []cmn.TStickDrawLog
	err = cmn.GormDB.Where("user_id = ?", userId).
		Order("created_at DESC").
		Limit(int(pageSize)).
		Offset(int(page * pageSize)).
		Find(&draws).Error
	if err != nil {
		z.Error("failed to query draw logs", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "查询抽签记录失败",
		})
		return
	}

	drawsJson, err := json.Marshal(draws)
	if err != nil {
		z.Error("failed to marshal draw logs", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "响应数据序列化失败",
		})
		return
	}

	c.JSON(http.StatusOK, cmn.ReplyProto{
		Status:   0,
		Msg:      "success",
		Data:     drawsJson,
		RowCount: total,
	})
}

// HandleReloadLots 重新加载签池，签文维护后调用
func (h *handler) HandleReloadLots(c *gin.Context) {
	if _, ok := user.GetCurrentUserID(c); !ok {
		z.Error("failed to get current user ID")
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 401,
			Msg:    "未登录或登录已过期",
		})
		return
	}

	if err := machine.ReloadPool(); err != nil {
		z.Error("failed to reload stick pool", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "刷新签池失败",
		})
		return
	}

	replyData, err := json.Marshal(map[string]any{
		"poolSize": machine.PoolSize(),
	})
	if err != nil {
		z.Error("failed to marshal reply data", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "响应数据序列化失败",
		})
		return
	}

	c.JSON(http.StatusOK, cmn.ReplyProto{
		Status: 0,
		Msg:    "签池已刷新",
		Data:   replyData,
	})
}
