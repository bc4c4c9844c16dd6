package stick

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"BaziMeta/cmn"
	"BaziMeta/cmn/points_core"

	"github.com/google/uuid"
	"github.com/mroth/weightedrand/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	// ErrPoolEmpty 签池中没有可抽取的签
	ErrPoolEmpty = errors.New("stick pool is empty")

	// ErrDailyLimitReached 今日抽签次数已用完
	ErrDailyLimitReached = errors.New("daily draw limit reached")
)

// pool 一次加载的签池快照，抽取器与签数一起原子替换
type pool struct {
	chooser *weightedrand.Chooser[cmn.TStickLot, uint]
	size    int
}

// Machine 抽签机
type Machine struct {
	atomicPool atomic.Value // 内存签池
	cost       float64      // 单次抽签消耗积分
	dailyLimit int          // 每人每日抽签上限，0表示不限
}

func NewMachine(cost float64, dailyLimit int) (*Machine, error) {
	if cost < 0 {
		return nil, fmt.Errorf("cost %.2f < 0", cost)
	}
	if dailyLimit < 0 {
		return nil, fmt.Errorf("dailyLimit %d < 0", dailyLimit)
	}

	m := &Machine{
		cost:       cost,
		dailyLimit: dailyLimit,
	}
	m.atomicPool.Store(&pool{})

	err := m.ReloadPool()
	if err != nil {
		z.Error("failed to load stick pool from db", zap.Error(err))
		return nil, err
	}

	return m, nil
}

// ReloadPool 从数据库重新加载启用的签文并重建抽取器
// 签文增删改后调用，抽取过程中可安全替换
func (m *Machine) ReloadPool() error {
	var lots []cmn.TStickLot
	err := cmn.GormDB.Where("enabled = ?", true).Find(&lots).Error
	if err != nil {
		z.Error("failed to query stick lots", zap.Error(err))
		return err
	}

	choices := buildChoices(lots)
	if len(choices) == 0 {
		// 空签池可以正常启动，抽签时返回 ErrPoolEmpty
		z.Warn("no available stick lots found in the database")
		m.atomicPool.Store(&pool{})
		return nil
	}

	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		z.Error("failed to build stick chooser", zap.Error(err))
		return err
	}

	m.atomicPool.Store(&pool{chooser: chooser, size: len(choices)})

	z.Info("stick pool reloaded", zap.Int("total", len(lots)), zap.Int("available", len(choices)))
	return nil
}

// buildChoices 将签文转换为带权选项，权重为0的签不参与抽取
func buildChoices(lots []cmn.TStickLot) []weightedrand.Choice[cmn.TStickLot, uint] {
	var choices []weightedrand.Choice[cmn.TStickLot, uint]
	for _, lot := range lots {
		if lot.Weight == 0 {
			z.Warn("stick lot has zero weight, skipped", zap.Int("lot_no", lot.LotNo))
			continue
		}
		choices = append(choices, weightedrand.Choice[cmn.TStickLot, uint]{
			Item:   lot,
			Weight: lot.Weight,
		})
	}
	return choices
}

// PoolSize 当前签池中可抽取的签数
func (m *Machine) PoolSize() int {
	p, ok := m.atomicPool.Load().(*pool)
	if !ok || p == nil {
		return 0
	}
	return p.size
}

// Draw 执行一次抽签
// 在单个事务中完成次数限制检查、积分扣减与抽签记录写入
func (m *Machine) Draw(ctx context.Context, userId uuid.UUID) (*cmn.TStickLot, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("userId is nil")
	}

	p, ok := m.atomicPool.Load().(*pool)
	if !ok || p == nil || p.chooser == nil {
		z.Warn("no stick lots available for draw")
		return nil, ErrPoolEmpty
	}

	lot := p.chooser.Pick()

	err := cmn.GormDB.Transaction(func(tx *gorm.DB) error {
		// 检查今日抽签次数
		if m.dailyLimit > 0 {
			loc, err := time.LoadLocation("Asia/Shanghai")
			if err != nil {
				z.Error("failed to load location", zap.Error(err))
				loc = time.Local
			}
			now := time.Now().In(loc)
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
			tomorrow := today.Add(24 * time.Hour)

			var todayCount int64
			err = tx.Model(&cmn.TStickDrawLog{}).
				Where("user_id = ? AND created_at >= ? AND created_at < ?", userId, today.UnixMilli(), tomorrow.UnixMilli()).
				Count(&todayCount).Error
			if err != nil {
				z.Error("failed to count today draws", zap.Error(err), zap.String("user_id", userId.String()))
				return err
			}
			if todayCount >= int64(m.dailyLimit) {
				return ErrDailyLimitReached
			}
		}

		// 扣除抽签积分
		if m.cost > 0 {
			err := points_core.SpendUserPoints(ctx, tx, userId, m.cost, "灵签抽签消耗")
			if err != nil {
				return err
			}
		}

		// 快照签文内容，之后签文被修改不影响历史记录
		lotJson, err := json.Marshal(lot)
		if err != nil {
			z.Error("failed to marshal lot snapshot", zap.Error(err))
			return err
		}

		drawLog := cmn.TStickDrawLog{
			UserId: userId,
			LotId:  lot.Id,
			Lot:    datatypes.JSON(lotJson),
		}
		err = tx.Create(&drawLog).Error
		if err != nil {
			z.Error("failed to create draw log", zap.Error(err), zap.String("user_id", userId.String()))
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	z.Info("stick drawn",
		zap.String("user_id", userId.String()),
		zap.Int("lot_no", lot.LotNo),
		zap.String("level", lot.Level))

	return &lot, nil
}
