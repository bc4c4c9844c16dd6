package ranking

import (
	"encoding/json"
	"net/http"

	"BaziMeta/cmn"
	"BaziMeta/serve/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	HandleQueryRankingList(c *gin.Context)
	HandleQueryMyRank(c *gin.Context)
}

type handler struct {
}

func NewHandler() Handler {
	return &handler{}
}

// HandleQueryRankingList 处理查询排行榜请求
func (h *handler) HandleQueryRankingList(c *gin.Context) {
	var req cmn.ReqProto
	err := c.ShouldBindJSON(&req)
	if err != nil {
		z.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 1,
			Msg:    "请求参数错误，请检查是否符合请求协议",
		})
		return
	}

	switch req.Action {
	case "points":
		rankingList, rowCount, err := QueryPointsRankingList(c, req.Page, req.PageSize)
		if err != nil {
			z.Error("failed to query points ranking list", zap.Error(err))
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: -1,
				Msg:    "查询排行榜失败",
			})
			return
		}

		rankingListJson, err := json.Marshal(rankingList)
		if err != nil {
			z.Error("failed to marshal ranking list", zap.Error(err))
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: -1,
				Msg:    "排行榜数据序列化失败",
			})
			return
		}

		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status:   0,
			Msg:      "查询成功",
			Data:     rankingListJson,
			RowCount: rowCount,
		})
		return
	default:
		z.Error("unknown action", zap.String("action", req.Action))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 1,
			Msg:    "未知的操作",
		})
		return
	}
}

// HandleQueryMyRank 处理查询当前用户排名请求
func (h *handler) HandleQueryMyRank(c *gin.Context) {
	userId, ok := user.GetCurrentUserID(c)
	if !ok {
		z.Error("failed to get current user ID")
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 401,
			Msg:    "未登录或登录已过期",
		})
		return
	}

	rankItem, err := QueryUserRank(c, userId)
	if err != nil {
		z.Error("failed to query user rank", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "查询排名失败",
		})
		return
	}

	if rankItem == nil {
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 1,
			Msg:    "暂未上榜",
		})
		return
	}

	rankItemJson, err := json.Marshal(rankItem)
	if err != nil {
		z.Error("failed to marshal rank item", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "排名数据序列化失败",
		})
		return
	}

	c.JSON(http.StatusOK, cmn.ReplyProto{
		Status: 0,
		Msg:    "查询成功",
		Data:   rankItemJson,
	})
}
