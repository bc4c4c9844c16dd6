package almanac

import (
	"encoding/json"
	"net/http"

	"BaziMeta/cmn"
	"BaziMeta/cmn/almanac_core"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	HandleGetToday(c *gin.Context)
}

type handler struct {
}

func NewHandler() Handler {
	return &handler{}
}

// HandleGetToday 处理查询当日黄历请求
func (h *handler) HandleGetToday(c *gin.Context) {
	day, err := almanac_core.GetToday()
	if err != nil {
		z.Error("failed to get today almanac", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "获取今日黄历失败，请稍后重试",
		})
		return
	}

	dayJson, err := json.Marshal(day)
	if err != nil {
		z.Error("failed to marshal almanac data", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "黄历数据序列化失败",
		})
		return
	}

	c.JSON(http.StatusOK, cmn.ReplyProto{
		Status: 0,
		Msg:    "success",
		Data:   dayJson,
	})
}
