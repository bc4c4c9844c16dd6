package lot_mgt

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"BaziMeta/cmn"
	"BaziMeta/serve/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// validLevels 签品的合法取值
var validLevels = map[string]bool{
	"上上": true,
	"上吉": true,
	"中吉": true,
	"中平": true,
	"下下": true,
}

// lotData 签文维护的请求数据，指针字段区分未填与零值
type lotData struct {
	LotNo          int    `json:"lotNo"`
	Title          string `json:"title"`
	Level          string `json:"level"`
	Poem           string `json:"poem"`
	Interpretation string `json:"interpretation"`
	Weight         *uint  `json:"weight"`
	Enabled        *bool  `json:"enabled"`
}

type Handler interface {
	HandleQueryLotList(c *gin.Context)
	HandleUpsertLot(c *gin.Context)
	HandleSetLotEnabled(c *gin.Context)
}

type handler struct {
}

func NewHandler() Handler {
	return &handler{}
}

// HandleQueryLotList 分页查询签文列表，Filter 支持按签品和启用状态过滤
func (h *handler) HandleQueryLotList(c *gin.Context) {
	if _, ok := user.GetCurrentUserID(c); !ok {
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

	type lotFilter struct {
		Level   string `json:"level"`
		Enabled *bool  `json:"enabled"`
	}
	var filter lotFilter
	if len(req.Filter) > 0 {
		if err := json.Unmarshal(req.Filter, &filter); err != nil {
			z.Error("failed to unmarshal filter", zap.Error(err))
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: 1,
				Msg:    "过滤条件格式错误",
			})
			return
		}
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

	countQuery := cmn.GormDB.Model(&cmn.TStickLot{})
	listQuery := cmn.GormDB.Model(&cmn.TStickLot{})
	if filter.Level != "" {
		countQuery = countQuery.Where("level = ?", filter.Level)
		listQuery = listQuery.Where("level = ?", filter.Level)
	}
	if filter.Enabled != nil {
		countQuery = countQuery.Where("enabled = ?", *filter.Enabled)
		listQuery = listQuery.Where("enabled = ?", *filter.Enabled)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		z.Error("failed to count stick lots", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "查询签文总数失败",
		})
		return
	}

	var lots []cmn.TStickLot
	err := listQuery.Order("lot_no ASC").
		Limit(int(pageSize)).
		Offset(int(page * pageSize)).
		Find(&lots).Error
	if err != nil {
		z.Error("failed to query stick lots", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "查询签文列表失败",
		})
		return
	}

	lotsJson, err := json.Marshal(lots)
	if err != nil {
		z.Error("failed to marshal stick lots", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "响应数据序列化失败",
		})
		return
	}

	c.JSON(http.StatusOK, cmn.ReplyProto{
		Status:   0,
		Msg:      "success",
		Data:     lotsJson,
		RowCount: total,
	})
}

// HandleUpsertLot 新增或按签号更新签文
// 更新时 Sets 指定要更新的字段，为空则更新全部可写字段
func (h *handler) HandleUpsertLot(c *gin.Context) {
	if _, ok := user.GetCurrentUserID(c); !ok {
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

	var d lotData
	if err := json.Unmarshal(req.Data, &d); err != nil {
		z.Error("failed to unmarshal request data", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 1,
			Msg:    "请求数据格式错误",
		})
		return
	}

	if d.LotNo <= 0 {
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 1,
			Msg:    "签号必须为正整数",
		})
		return
	}
	if d.Level != "" && !validLevels[d.Level] {
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 1,
			Msg:    "签品取值无效",
		})
		return
	}

	var existing cmn.TStickLot
	err := cmn.GormDB.Where("lot_no = ?", d.LotNo).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		z.Error("failed to query stick lot", zap.Error(err), zap.Int("lot_no", d.LotNo))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "查询签文失败",
		})
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 新增签文
		if d.Title == "" || d.Level == "" {
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: 1,
				Msg:    "新增签文时签名和签品不能为空",
			})
			return
		}

		lot := cmn.TStickLot{
			LotNo:          d.LotNo,
			Title:          d.Title,
			Level:          d.Level,
			Poem:           d.Poem,
			Interpretation: d.Interpretation,
			Weight:         1,
			Enabled:        true,
		}
		if d.Weight != nil {
			lot.Weight = *d.Weight
		}
		if d.Enabled != nil {
			lot.Enabled = *d.Enabled
		}

		if err = cmn.GormDB.Create(&lot).Error; err != nil {
			z.Error("failed to create stick lot", zap.Error(err), zap.Int("lot_no", d.LotNo))
			c.JSON(http.StatusOK, cmn.ReplyProto{
				Status: -1,
				Msg:    "新增签文失败",
			})
			return
		}

		z.Info("stick lot created", zap.Int("lot_no", d.LotNo), zap.String("title", d.Title))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 0,
			Msg:    "签文已新增，刷新签池后生效",
		})
		return
	}

	// 更新已存在的签文
	updates, err := buildLotUpdates(req.Sets, d)
	if err != nil {
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 1,
			Msg:    err.Error(),
		})
		return
	}

	err = cmn.GormDB.Model(&cmn.TStickLot{}).Where("lot_no = ?", d.LotNo).Updates(updates).Error
	if err != nil {
		z.Error("failed to update stick lot", zap.Error(err), zap.Int("lot_no", d.LotNo))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "更新签文失败",
		})
		return
	}

	z.Info("stick lot updated", zap.Int("lot_no", d.LotNo), zap.Strings("sets", req.Sets))
	c.JSON(http.StatusOK, cmn.ReplyProto{
		Status: 0,
		Msg:    "签文已更新，刷新签池后生效",
	})
}

// buildLotUpdates 根据 Sets 构造更新字段，为空则更新全部可写字段
// 指针字段未提供时跳过对应更新
func buildLotUpdates(sets []string, d lotData) (map[string]interface{}, error) {
	if len(sets) == 0 {
		sets = []string{"title", "level", "poem", "interpretation", "weight", "enabled"}
	}

	updates := make(map[string]interface{})
	for _, field := range sets {
		switch field {
		case "title":
			if d.Title != "" {
				updates["title"] = d.Title
			}
		case "level":
			if d.Level != "" {
				updates["level"] = d.Level
			}
		case "poem":
			updates["poem"] = d.Poem
		case "interpretation":
			updates["interpretation"] = d.Interpretation
		case "weight":
			if d.Weight != nil {
				updates["weight"] = *d.Weight
			}
		case "enabled":
			if d.Enabled != nil {
				updates["enabled"] = *d.Enabled
			}
		default:
			return nil, fmt.Errorf("不支持更新字段: %s", field)
		}
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("没有需要更新的内容")
	}

	return updates, nil
}

// HandleSetLotEnabled 启用或停用指定签文
func (h *handler) HandleSetLotEnabled(c *gin.Context) {
	if _, ok := user.GetCurrentUserID(c); !ok {
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

	type data struct {
		LotNo   int   `json:"lotNo"`
		Enabled *bool `json:"enabled"`
	}
	var d data
	if err := json.Unmarshal(req.Data, &d); err != nil {
		z.Error("failed to unmarshal request data", zap.Error(err))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 1,
			Msg:    "请求数据格式错误",
		})
		return
	}

	if d.LotNo <= 0 || d.Enabled == nil {
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 1,
			Msg:    "签号和启用状态不能为空",
		})
		return
	}

	res := cmn.GormDB.Model(&cmn.TStickLot{}).Where("lot_no = ?", d.LotNo).Update("enabled", *d.Enabled)
	if res.Error != nil {
		z.Error("failed to update stick lot enabled", zap.Error(res.Error), zap.Int("lot_no", d.LotNo))
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: -1,
			Msg:    "更新签文状态失败",
		})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusOK, cmn.ReplyProto{
			Status: 1,
			Msg:    "签文不存在",
		})
		return
	}

	z.Info("stick lot enabled updated", zap.Int("lot_no", d.LotNo), zap.Bool("enabled", *d.Enabled))
	c.JSON(http.StatusOK, cmn.ReplyProto{
		Status: 0,
		Msg:    "签文状态已更新，刷新签池后生效",
	})
}
