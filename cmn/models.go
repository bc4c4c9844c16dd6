package cmn

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	TUserName     = "t_user"     // 用户信息表
	TSmsCodesName = "t_sms_code" // 短信验证码表

	TUserDestinyName = "t_user_destiny" // 用户命理分析表

	TUserPointsName  = "t_user_points"   // 用户积分表
	TPointsLogName   = "t_points_log"    // 积分流水表
	TUserCheckInName = "t_user_check_in" // 用户签到表

	TStickLotName     = "t_stick_lot"      // 灵签签文表
	TStickDrawLogName = "t_stick_draw_log" // 用户求签日志表

	VUserPointsName = "v_user_points" // 用户积分视图
)

// TUser 用户信息表
type TUser struct {
	Id          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null;unique;index"` // 用户ID
	NickName    string    `gorm:"column:nick_name;type:varchar(50)"`                    // 昵称
	Gender      string    `gorm:"column:gender;type:varchar(2)"`                        // 性别 男/女
	MobilePhone string    `gorm:"column:mobile_phone;type:varchar(11);uniqueIndex"`     // 手机号
	LoginTime   int64     `gorm:"column:login_time;type:bigint"`                        // 最近登录时间
	CreatedAt   int64     `gorm:"column:created_at;type:bigint;autoCreateTime:milli"`   // 创建时间
	UpdatedAt   int64     `gorm:"column:updated_at;type:bigint;autoUpdateTime:milli"`   // 更新时间
	Status      string    `gorm:"column:status;type:varchar(2);default:'00';index"`     // 用户状态 00:启用 01:禁用
}

func (TUser) TableName() string {
	return TUserName
}

// TSmsCodes 短信验证码表
type TSmsCodes struct {
	Id          int64  `gorm:"column:id;type:bigint;primaryKey;autoIncrement"`     // ID
	MobilePhone string `gorm:"column:mobile_phone;type:varchar(11);not null"`      // 手机号
	Code        string `gorm:"column:code;type:varchar(10);not null"`              // 验证码
	ExpiresAt   int64  `gorm:"column:expires_at;type:bigint;not null"`             // 验证码过期时间
	CreatedAt   int64  `gorm:"column:created_at;type:bigint;autoCreateTime:milli"` // 创建时间
	UpdatedAt   int64  `gorm:"column:updated_at;type:bigint;autoUpdateTime:milli"` // 更新时间
}

func (TSmsCodes) TableName() string {
	return TSmsCodesName
}

// TUserDestiny 用户命理分析表，每个用户保留最近一次命盘分析结果
type TUserDestiny struct {
	Id          int64          `gorm:"column:id;type:bigint;primaryKey;autoIncrement"`     // ID
	UserId      uuid.UUID      `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`      // 用户ID
	Name        string         `gorm:"column:name;type:varchar(50)"`                       // 命主姓名
	Gender      string         `gorm:"column:gender;type:varchar(2)"`                      // 命主性别 男/女
	BirthYear   string         `gorm:"column:birth_year;type:varchar(10)"`                 // 出生年份
	YearPillar  string         `gorm:"column:year_pillar;type:varchar(8)"`                 // 年柱
	MonthPillar string         `gorm:"column:month_pillar;type:varchar(8)"`                // 月柱
	DayPillar   string         `gorm:"column:day_pillar;type:varchar(8)"`                  // 日柱
	HourPillar  string         `gorm:"column:hour_pillar;type:varchar(8)"`                 // 时柱
	StartAge    int            `gorm:"column:start_age;type:int"`                          // 起运年龄
	FirstDaYun  string         `gorm:"column:first_da_yun;type:varchar(8)"`                // 第一步大运
	Direction   string         `gorm:"column:direction;type:varchar(4)"`                   // 大运排列方向 顺排/逆排
	Model       string         `gorm:"column:model;type:varchar(50)"`                      // 分析使用的模型
	Bazi        string         `gorm:"column:bazi;type:text"`                              // 模型返回的八字描述
	ChartData   datatypes.JSON `gorm:"column:chart_data;type:jsonb"`                       // 命盘曲线数据
	Analysis    datatypes.JSON `gorm:"column:analysis;type:jsonb"`                         // 六维分析结果
	AnalyzedAt  int64          `gorm:"column:analyzed_at;type:bigint"`                     // 本次分析时间
	CreatedAt   int64          `gorm:"column:created_at;type:bigint;autoCreateTime:milli"` // 创建时间
	UpdatedAt   int64          `gorm:"column:updated_at;type:bigint;autoUpdateTime:milli"` // 更新时间
}

func (TUserDestiny) TableName() string {
	return TUserDestinyName
}

// TUserPoints 用户积分表
type TUserPoints struct {
	Id        int64     `gorm:"column:id;type:bigint;primaryKey;autoIncrement"`     // ID
	UserId    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`      // 用户ID
	Points    float64   `gorm:"column:points;type:float;default:0"`                 // 积分余额
	CreatedAt int64     `gorm:"column:created_at;type:bigint;autoCreateTime:milli"` // 创建时间
	UpdatedAt int64     `gorm:"column:updated_at;type:bigint;autoUpdateTime:milli"` // 更新时间
}

func (TUserPoints) TableName() string {
	return TUserPointsName
}

// TPointsLog 积分流水表
type TPointsLog struct {
	Id        int64     `gorm:"column:id;type:bigint;primaryKey;autoIncrement"`     // ID
	UserId    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`            // 用户ID
	Change    float64   `gorm:"column:change;type:float;not null"`                  // 积分变动，正为获得负为消耗
	Reason    string    `gorm:"column:reason;type:varchar(100)"`                    // 变动原因
	CreatedAt int64     `gorm:"column:created_at;type:bigint;autoCreateTime:milli"` // 创建时间
}

func (TPointsLog) TableName() string {
	return TPointsLogName
}

// TUserCheckIn 用户签到表，user_id + check_in_date 唯一保证每天只能签到一次
type TUserCheckIn struct {
	Id          int64     `gorm:"column:id;type:bigint;primaryKey;autoIncrement"`                      // ID
	UserId      uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_checkin"`      // 用户ID
	CheckInDate string    `gorm:"column:check_in_date;type:varchar(10);uniqueIndex:idx_user_checkin"` // 签到日期 2006-01-02
	Points      float64   `gorm:"column:points;type:float;default:0"`                                  // 本次签到获得的积分
	CreatedAt   int64     `gorm:"column:created_at;type:bigint;autoCreateTime:milli"`                  // 创建时间
}

func (TUserCheckIn) TableName() string {
	return TUserCheckInName
}

// TStickLot 灵签签文表
type TStickLot struct {
	Id             int64  `gorm:"column:id;type:bigint;primaryKey;autoIncrement"`     // ID
	LotNo          int    `gorm:"column:lot_no;type:int;not null;uniqueIndex"`        // 签号
	Title          string `gorm:"column:title;type:varchar(100);not null"`            // 签名
	Level          string `gorm:"column:level;type:varchar(10);not null;index"`       // 签品 上上/上吉/中吉/中平/下下
	Poem           string `gorm:"column:poem;type:text"`                              // 签诗
	Interpretation string `gorm:"column:interpretation;type:text"`                    // 解签
	Weight         uint   `gorm:"column:weight;type:int;not null;default:1"`          // 抽中权重
	Enabled        bool   `gorm:"column:enabled;type:bool;not null;default:true"`     // 是否参与抽取
	CreatedAt      int64  `gorm:"column:created_at;type:bigint;autoCreateTime:milli"` // 创建时间
	UpdatedAt      int64  `gorm:"column:updated_at;type:bigint;autoUpdateTime:milli"` // 更新时间
}

func (TStickLot) TableName() string {
	return TStickLotName
}

// TStickDrawLog 用户求签日志表，lot 字段保存抽中时的签文快照
type TStickDrawLog struct {
	Id        int64          `gorm:"column:id;type:bigint;primaryKey;autoIncrement"`     // ID
	UserId    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`            // 用户ID
	LotId     int64          `gorm:"column:lot_id;type:bigint;not null"`                 // 签ID
	Lot       datatypes.JSON `gorm:"column:lot;type:jsonb"`                              // 签文快照
	CreatedAt int64          `gorm:"column:created_at;type:bigint;autoCreateTime:milli"` // 创建时间
}

func (TStickDrawLog) TableName() string {
	return TStickDrawLogName
}

// VUserPoints 用户积分视图，排行榜查询使用
type VUserPoints struct {
	UserId    uuid.UUID `gorm:"column:user_id"`
	NickName  string    `gorm:"column:nick_name"`
	Points    float64   `gorm:"column:points"`
	UpdatedAt int64     `gorm:"column:updated_at"`
}

func (VUserPoints) TableName() string {
	return VUserPointsName
}
