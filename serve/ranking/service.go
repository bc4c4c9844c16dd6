package ranking

import (
	"context"
	"fmt"

	"BaziMeta/cmn"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QueryPointsRankingList 查询积分排行榜列表
// 基于 v_user_points 视图，排名由窗口函数在数据库层面计算
func QueryPointsRankingList(ctx context.Context, page, pageSize int64) ([]PointsRankingItem, int64, error) {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	// 先查询总记录数
	var totalCount int64
	err := cmn.GormDB.WithContext(ctx).Model(&cmn.VUserPoints{}).Count(&totalCount).Error
	if err != nil {
		z.Error("failed to query total count", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to query total count: %w", err)
	}

	// 如果没有数据，返回空切片
	if totalCount == 0 {
		return []PointsRankingItem{}, 0, nil
	}

	// RANK() 让积分相同的用户并列同一名次
	var items []PointsRankingItem
	err = cmn.GormDB.WithContext(ctx).
		Table(cmn.VUserPointsName).
		Select("user_id, nick_name, points, RANK() OVER (ORDER BY points DESC) as ranking").
		Order("ranking ASC, user_id ASC").
		Limit(int(pageSize)).
		Offset(int(page * pageSize)).
		Scan(&items).Error
	if err != nil {
		z.Error("failed to query ranking data", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to query ranking data: %w", err)
	}

	return items, totalCount, nil
}

// QueryUserRank 查询指定用户的积分排名
// 用户没有积分记录时返回 nil
func QueryUserRank(ctx context.Context, userId uuid.UUID) (*PointsRankingItem, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("userId is nil")
	}

	// 窗口函数的结果不能直接过滤，包一层子查询再按用户取行
	subQuery := cmn.GormDB.
		Table(cmn.VUserPointsName).
		Select("user_id, nick_name, points, RANK() OVER (ORDER BY points DESC) as ranking")

	var item PointsRankingItem
	err := cmn.GormDB.WithContext(ctx).
		Table("(?) as ranked", subQuery).
		Where("user_id = ?", userId).
		Scan(&item).Error
	if err != nil {
		z.Error("failed to query user rank", zap.Error(err), zap.String("user_id", userId.String()))
		return nil, fmt.Errorf("failed to query user rank: %w", err)
	}

	if item.Ranking == 0 {
		// 视图中没有该用户
		return nil, nil
	}

	return &item, nil
}
