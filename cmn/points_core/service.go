package points_core

import (
	"context"
	"errors"
	"fmt"

	"BaziMeta/cmn"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrInsufficientPoints 积分余额不足
var ErrInsufficientPoints = errors.New("insufficient points")

// InitializeUserPoints 为新用户创建积分账户
// 仅为不存在积分记录的用户创建初始积分，不会更新已存在的记录
func InitializeUserPoints(ctx context.Context, db *gorm.DB, userId uuid.UUID) error {
	if db == nil {
		db = cmn.GormDB
	}
	if userId == uuid.Nil {
		e := fmt.Errorf("userId is nil")
		z.Error(e.Error())
		return e
	}

	// 检查用户积分记录是否已存在
	var existingPoints cmn.TUserPoints
	err := db.WithContext(ctx).Where("user_id = ?", userId).First(&existingPoints).Error
	if err == nil {
		// 记录已存在，不进行初始化
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		z.Error("failed to query user points", zap.Error(err), zap.String("user_id", userId.String()))
		return err
	}

	// 创建用户积分记录
	userPoints := cmn.TUserPoints{
		UserId: userId,
		Points: initialPoints,
	}
	err = db.WithContext(ctx).Create(&userPoints).Error
	if err != nil {
		z.Error("failed to create user points", zap.Error(err), zap.String("user_id", userId.String()))
		return err
	}

	z.Info("user points initialized successfully",
		zap.String("user_id", userId.String()),
		zap.Float64("initial_points", initialPoints))

	return nil
}

// AddUserPoints 增加用户积分并记录流水
func AddUserPoints(ctx context.Context, db *gorm.DB, userId uuid.UUID, points float64, reason string) error {
	if db == nil {
		db = cmn.GormDB
	}
	if userId == uuid.Nil {
		e := fmt.Errorf("userId is nil")
		z.Error(e.Error())
		return e
	}
	if points <= 0 {
		e := fmt.Errorf("points must be positive")
		z.Error(e.Error())
		return e
	}

	// 查询用户现有积分记录
	var userPoints cmn.TUserPoints
	err := db.WithContext(ctx).Where("user_id = ?", userId).First(&userPoints).Error
	if err != nil {
		e := fmt.Errorf("failed to query user points: %w, userId: %s", err, userId.String())
		z.Error(e.Error())
		return e
	}

	// 累加积分到原有积分上
	newTotalPoints := userPoints.Points + points

	err = db.WithContext(ctx).Model(&userPoints).Update("points", newTotalPoints).Error
	if err != nil {
		e := fmt.Errorf("failed to update user points: %w, userId: %s", err, userId.String())
		z.Error(e.Error())
		return e
	}

	// 记录积分流水
	logRow := cmn.TPointsLog{
		UserId: userId,
		Change: points,
		Reason: reason,
	}
	err = db.WithContext(ctx).Create(&logRow).Error
	if err != nil {
		e := fmt.Errorf("failed to create points log: %w, userId: %s", err, userId.String())
		z.Error(e.Error())
		return e
	}

	return nil
}

// SpendUserPoints 扣减用户积分并记录流水
// 余额不足时返回 ErrInsufficientPoints，不做任何变更
func SpendUserPoints(ctx context.Context, db *gorm.DB, userId uuid.UUID, points float64, reason string) error {
	if db == nil {
		db = cmn.GormDB
	}
	if userId == uuid.Nil {
		e := fmt.Errorf("userId is nil")
		z.Error(e.Error())
		return e
	}
	if points <= 0 {
		e := fmt.Errorf("points must be positive")
		z.Error(e.Error())
		return e
	}

	// 查询用户现有积分记录
	var userPoints cmn.TUserPoints
	err := db.WithContext(ctx).Where("user_id = ?", userId).First(&userPoints).Error
	if err != nil {
		e := fmt.Errorf("failed to query user points: %w, userId: %s", err, userId.String())
		z.Error(e.Error())
		return e
	}

	if userPoints.Points < points {
		z.Warn("insufficient points",
			zap.String("user_id", userId.String()),
			zap.Float64("balance", userPoints.Points),
			zap.Float64("required", points))
		return ErrInsufficientPoints
	}

	newTotalPoints := userPoints.Points - points

	err = db.WithContext(ctx).Model(&userPoints).Update("points", newTotalPoints).Error
	if err != nil {
		e := fmt.Errorf("failed to update user points: %w, userId: %s", err, userId.String())
		z.Error(e.Error())
		return e
	}

	// 记录积分流水，消耗记为负数
	logRow := cmn.TPointsLog{
		UserId: userId,
		Change: -points,
		Reason: reason,
	}
	err = db.WithContext(ctx).Create(&logRow).Error
	if err != nil {
		e := fmt.Errorf("failed to create points log: %w, userId: %s", err, userId.String())
		z.Error(e.Error())
		return e
	}

	return nil
}

// GetUserPoints 查询用户积分余额，无记录时视为0
func GetUserPoints(ctx context.Context, db *gorm.DB, userId uuid.UUID) (float64, error) {
	if db == nil {
		db = cmn.GormDB
	}
	if userId == uuid.Nil {
		e := fmt.Errorf("userId is nil")
		z.Error(e.Error())
		return 0, e
	}

	var userPoints cmn.TUserPoints
	err := db.WithContext(ctx).Where("user_id = ?", userId).First(&userPoints).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		z.Error("failed to query user points", zap.Error(err), zap.String("user_id", userId.String()))
		return 0, err
	}

	return userPoints.Points, nil
}
