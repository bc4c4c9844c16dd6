package destiny

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"BaziMeta/cmn"
	"BaziMeta/cmn/llm"
	"BaziMeta/cmn/points_core"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnalyzeLifeDestiny 根据四柱信息调用 AI 生成命盘分析。
// 命主信息不做合法性校验，按原样写入提示词，由模型自行理解
func AnalyzeLifeDestiny(ctx context.Context, srv llm.Service, input DestinyInput) (*LifeDestinyResult, error) {
	if srv == nil {
		return nil, errors.New("llm service is nil")
	}

	polarity := YearStemPolarity(input.YearPillar)
	direction := DaYunDirection(input.Gender, polarity)
	startAge := ParseStartAge(input.StartAge)

	prompt := BuildPrompt(input, direction, startAge)

	content, err := srv.ChatJSON(ctx, llm.ChatParams{
		ApiKey:  input.ApiKey,
		BaseUrl: input.BaseUrl,
		Model:   input.Model,
		System:  systemInstruction,
		Prompt:  prompt,
	})
	if err != nil {
		return nil, err
	}

	result, err := ParseDestinyReply(content)
	if err != nil {
		return nil, err
	}

	z.Info("life destiny analyzed",
		zap.String("name", input.Name),
		zap.String("direction", string(direction)),
		zap.Int("chartPoints", len(result.ChartData)))

	return result, nil
}

// AnalyzeAndSaveDestiny 执行命盘分析并落库，首次分析发放积分奖励。
// 返回分析结果与本次发放的积分数
func AnalyzeAndSaveDestiny(ctx context.Context, db *gorm.DB, srv llm.Service, userId uuid.UUID, input DestinyInput) (*LifeDestinyResult, float64, error) {
	if userId == uuid.Nil {
		return nil, 0, errors.New("user id is nil")
	}
	if db == nil {
		db = cmn.GormDB
	}

	result, err := AnalyzeLifeDestiny(ctx, srv, input)
	if err != nil {
		return nil, 0, err
	}

	var existCount int64
	err = db.WithContext(ctx).
		Model(&cmn.TUserDestiny{}).
		Where("user_id = ?", userId).
		Count(&existCount).Error
	if err != nil {
		z.Error("failed to count user destiny records", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count user destiny records: %w", err)
	}

	chartData, err := json.Marshal(result.ChartData)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal chart data: %w", err)
	}
	analysis, err := json.Marshal(result.Analysis)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	model := input.Model
	if model == "" {
		model = llm.DefaultModel
	}

	record := cmn.TUserDestiny{
		UserId:      userId,
		Name:        input.Name,
		Gender:      input.Gender,
		BirthYear:   input.BirthYear,
		YearPillar:  input.YearPillar,
		MonthPillar: input.MonthPillar,
		DayPillar:   input.DayPillar,
		HourPillar:  input.HourPillar,
		StartAge:    ParseStartAge(input.StartAge),
		FirstDaYun:  input.FirstDaYun,
		Direction:   string(DaYunDirection(input.Gender, YearStemPolarity(input.YearPillar))),
		Model:       model,
		Bazi:        result.Bazi,
		ChartData:   datatypes.JSON(chartData),
		Analysis:    datatypes.JSON(analysis),
		AnalyzedAt:  time.Now().UnixMilli(),
	}

	if existCount > 0 {
		err = db.WithContext(ctx).
			Model(&cmn.TUserDestiny{}).
			Where("user_id = ?", userId).
			Updates(map[string]any{
				"name":         record.Name,
				"gender":       record.Gender,
				"birth_year":   record.BirthYear,
				"year_pillar":  record.YearPillar,
				"month_pillar": record.MonthPillar,
				"day_pillar":   record.DayPillar,
				"hour_pillar":  record.HourPillar,
				"start_age":    record.StartAge,
				"first_da_yun": record.FirstDaYun,
				"direction":    record.Direction,
				"model":        record.Model,
				"bazi":         record.Bazi,
				"chart_data":   record.ChartData,
				"analysis":     record.Analysis,
				"analyzed_at":  record.AnalyzedAt,
			}).Error
		if err != nil {
			z.Error("failed to update user destiny record", zap.Error(err))
			return nil, 0, fmt.Errorf("failed to update user destiny record: %w", err)
		}
		return result, 0, nil
	}

	if err = db.WithContext(ctx).Create(&record).Error; err != nil {
		z.Error("failed to create user destiny record", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to create user destiny record: %w", err)
	}

	// 首次分析发放积分奖励
	if err = points_core.AddUserPoints(ctx, db, userId, firstAnalysisScore, "首次命盘分析奖励"); err != nil {
		z.Error("failed to add first analysis reward", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to add first analysis reward: %w", err)
	}

	return result, firstAnalysisScore, nil
}

// QueryUserDestiny 查询用户最近一次命盘分析记录
func QueryUserDestiny(ctx context.Context, db *gorm.DB, userId uuid.UUID) (*cmn.TUserDestiny, error) {
	if userId == uuid.Nil {
		return nil, errors.New("user id is nil")
	}
	if db == nil {
		db = cmn.GormDB
	}

	var record cmn.TUserDestiny
	err := db.WithContext(ctx).
		Where("user_id = ?", userId).
		First(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}
