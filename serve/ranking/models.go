package ranking

import "github.com/google/uuid"

// PointsRankingItem 积分排行榜列表项
type PointsRankingItem struct {
	UserId   uuid.UUID `gorm:"column:user_id" json:"userId"`     // 用户ID
	NickName string    `gorm:"column:nick_name" json:"nickName"` // 昵称
	Points   float64   `gorm:"column:points" json:"points"`      // 积分
	Ranking  int64     `gorm:"column:ranking" json:"ranking"`    // 排名，积分相同的用户并列
}
