package destiny

import (
	"encoding/json"
	"errors"
	"net/http"

	"BaziMeta/cmn"
	"BaziMeta/cmn/llm"
	"BaziMeta/serve/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler 命盘分析接口
type Handler interface {
	// HandleAnalyzeMyDestiny 分析当前用户命盘
	HandleAnalyzeMyDestiny(c *gin.Context)

	// HandleQueryMyDestiny 查询当前用户命盘分析记录
	HandleQueryMyDestiny(c *gin.Context)
}

type handler struct {
	llmSrv llm.Service
}

// NewHandler 创建命盘分析接口实例
func NewHandler() Handler {
	return &handler{
		llmSrv: llm.NewService(),
	}
}

// HandleAnalyzeMyDestiny 分析当前用户命盘并保存结果
func (h *handler) HandleAnalyzeMyDestiny(c *gin.Context) {
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
			Status: -1,
			Msg:    "请求体结构错误",
		})
		return
	}

	type ReqData struct {
		Name        string `json:"name"`        // 姓名
		Gender      string `json:"gender"`      // 性别
		BirthYear   string `json:"birthYear"`   // 出生年份
		YearPillar  string `json:"yearPillar"`  // 年柱
		MonthPillar string `json:"monthPillar"` // 月柱
		DayPillar   string `json:"dayPillar"`   // 日柱
		HourPillar  string `json:"hourPillar"`  // 时柱
		StartAge    string `json:"startAge"`    // 起运年龄
		FirstDaYun  string `json:"firstDaYun"`  // 第一步大运
	}
	var reqData ReqData
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		z.Error("failed to unmarshal request data", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "请求体数据错误",
		})
		return
	}

	if reqData.Name == "" || reqData.Gender == "" {
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 1,
			Msg:    "姓名和性别不能为空",
		})
		return
	}

	apiKey, baseUrl, model := llm.DefaultCredentials()
	input := DestinyInput{
		ApiKey:      apiKey,
		BaseUrl:     baseUrl,
		Model:       model,
		Name:        reqData.Name,
		Gender:      reqData.Gender,
		BirthYear:   reqData.BirthYear,
		YearPillar:  reqData.YearPillar,
		MonthPillar: reqData.MonthPillar,
		DayPillar:   reqData.DayPillar,
		HourPillar:  reqData.HourPillar,
		StartAge:    reqData.StartAge,
		FirstDaYun:  reqData.FirstDaYun,
	}

	var result *LifeDestinyResult
	var addedPoints float64
	err := cmn.GormDB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		result, addedPoints, txErr = AnalyzeAndSaveDestiny(c, tx, h.llmSrv, userId, input)
		return txErr
	})
	if err != nil {
		z.Error("failed to analyze destiny", zap.Error(err))
		var lerr *llm.Error
		if errors.As(err, &lerr) {
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: 1,
				Msg:    lerr.Msg,
			})
			return
		}
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "命盘分析失败",
		})
		return
	}

	replyData, err := json.Marshal(map[string]any{
		"destiny": result,
		"points":  addedPoints,
	})
	if err != nil {
		z.Error("failed to marshal reply data", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "服务器内部错误",
		})
		return
	}

	c.JSON(http.StatusOK, cmn.ReplyProto{
		Status: 0,
		Msg:    "success",
		Data:   replyData,
	})
}

// HandleQueryMyDestiny 查询当前用户命盘分析记录
func (h *handler) HandleQueryMyDestiny(c *gin.Context) {
	userId, ok := user.GetCurrentUserID(c)
	if !ok {
		z.Error("failed to get current user ID")
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 401,
			Msg:    "未登录或登录已过期",
		})
		return
	}

	record, err := QueryUserDestiny(c, cmn.GormDB, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: 1,
				Msg:    "暂无命盘分析记录，请先进行命盘分析",
			})
			return
		}
		z.Error("failed to query user destiny", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "查询命盘分析记录失败",
		})
		return
	}

	replyData, err := json.Marshal(record)
	if err != nil {
		z.Error("failed to marshal reply data", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "服务器内部错误",
		})
		return
	}

	c.JSON(http.StatusOK, cmn.ReplyProto{
		Status: 0,
		Msg:    "success",
		Data:   replyData,
	})
}
