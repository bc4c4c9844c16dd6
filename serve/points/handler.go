package points

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"BaziMeta/cmn"
	"BaziMeta/cmn/points_core"
	"BaziMeta/serve/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler interface {
	HandleQueryMyPoints(c *gin.Context)
	HandleDailyCheckIn(c *gin.Context)
	HandleQueryMyPointsLog(c *gin.Context)
}

type handler struct {
}

func NewHandler() Handler {
	return &handler{}
}

// HandleQueryMyPoints 处理获取当前用户积分
func (h *handler) HandleQueryMyPoints(c *gin.Context) {
	// 获取当前用户ID
	userId, ok := user.GetCurrentUserID(c)
	if !ok {
		z.Error("failed to get current user ID")
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 401,
			Msg:    "未登录或登录已过期",
		})
		return
	}

	// 查询用户积分
	var userPoints cmn.TUserPoints
	err := cmn.GormDB.Where("user_id = ?", userId).First(&userPoints).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			z.Info("user points not found", zap.String("user_id", userId.String()))
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: 1,
				Msg:    "未找到用户积分记录",
			})
			return
		}
		z.Error("failed to query user points", zap.Error(err), zap.String("user_id", userId.String()))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "查询用户积分失败",
		})
		return
	}

	responseData := map[string]interface{}{
		"points": userPoints.Points,
	}

	responseJson, err := json.Marshal(responseData)
	if err != nil {
		z.Error("failed to marshal response data", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "响应数据序列化失败",
		})
		return
	}

	c.JSON(http.StatusOK, cmn.ReplyProto{
		Status: 0,
		Msg:    "success",
		Data:   responseJson,
	})
}

// HandleDailyCheckIn 处理每日签到请求
func (h *handler) HandleDailyCheckIn(c *gin.Context) {
	// 获取当前用户ID
	userId, ok := user.GetCurrentUserID(c)
	if !ok {
		z.Error("failed to get current user ID")
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 401,
			Msg:    "未登录或登录已过期",
		})
		return
	}

	// 以上海时区的自然日作为签到日期
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		z.Error("failed to load location", zap.Error(err))
		loc = time.Local
	}
	today := time.Now().In(loc).Format("2006-01-02")

	var checkInRecord cmn.TUserCheckIn
	var alreadyCheckedIn bool

	err = cmn.GormDB.Transaction(func(tx *gorm.DB) error {
		// 检查今天是否已经签到
		err := tx.Where("user_id = ? AND check_in_date = ?", userId, today).
			First(&checkInRecord).Error
		if err == nil {
			// 今天已经签到过了
			alreadyCheckedIn = true
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			// 数据库查询错误
			z.Error("failed to query check in record", zap.Error(err), zap.String("user_id", userId.String()))
			return err
		}

		// 今天还没有签到，创建签到记录，唯一索引兜底防止并发重复签到
		checkInRecord = cmn.TUserCheckIn{
			UserId:      userId,
			CheckInDate: today,
			Points:      dailyCheckInPoints,
		}

		err = tx.Create(&checkInRecord).Error
		if err != nil {
			z.Error("failed to create check in record", zap.Error(err), zap.String("user_id", userId.String()))
			return err
		}

		// 累加用户积分
		err = points_core.AddUserPoints(c, tx, userId, dailyCheckInPoints, "每日签到奖励")
		if err != nil {
			z.Error("failed to add user points", zap.Error(err), zap.String("user_id", userId.String()))
			return err
		}

		alreadyCheckedIn = false
		return nil
	})

	if err != nil {
		z.Error("failed to process daily check in", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "签到失败",
		})
		return
	}

	// 构建响应数据
	replyData := map[string]interface{}{
		"alreadyCheckedIn": alreadyCheckedIn,
		"points":           checkInRecord.Points,
		"checkInDate":      checkInRecord.CheckInDate,
	}

	replyDataJson, err := json.Marshal(replyData)
	if err != nil {
		z.Error("failed to marshal reply data", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "响应数据序列化失败",
		})
		return
	}

	var msg string
	if alreadyCheckedIn {
		msg = "今日已签到"
	} else {
		msg = "签到成功"
	}

	c.JSON(http.StatusOK, cmn.ReplyProto{
		Status: 0,
		Msg:    msg,
		Data:   replyDataJson,
	})
}

// HandleQueryMyPointsLog 分页查询当前用户积分流水
func (h *handler) HandleQueryMyPointsLog(c *gin.Context) {
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
	err := cmn.GormDB.Model(&cmn.TPointsLog{}).Where("user_id = ?", userId).Count(&total).Error
	if err != nil {
		z.Error("failed to count points logs", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "查询积分流水总数失败",
		})
		return
	}

	var logs []cmn.TPointsLog
	err = cmn.GormDB.Where("user_id = ?", userId).
		Order("created_at DESC").
		Limit(int(pageSize)).
		Offset(int(page * pageSize)).
		Find(&logs).Error
	if err != nil {
		z.Error("failed to query points logs", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "查询积分流水失败",
		})
		return
	}

	logsJson, err := json.Marshal(logs)
	if err != nil {
		z.Error("failed to marshal points logs", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "响应数据序列化失败",
		})
		return
	}

	c.JSON(http.StatusOK, cmn.ReplyProto{
		Status:   0,
		Msg:      "success",
		Data:     logsJson,
		RowCount: total,
	})
}
