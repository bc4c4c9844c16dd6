package destiny

import "encoding/json"

// DestinyInput 一次命理分析的全部输入，调用凭证与命主信息同源传入。
// 除凭证做存在性校验外，四柱内容不做正确性校验
type DestinyInput struct {
	ApiKey  string `json:"apiKey"`
	BaseUrl string `json:"baseUrl"`
	Model   string `json:"model"`

	Name        string `json:"name"`
	Gender      string `json:"gender"`
	BirthYear   string `json:"birthYear"`
	YearPillar  string `json:"yearPillar"`
	MonthPillar string `json:"monthPillar"`
	DayPillar   string `json:"dayPillar"`
	HourPillar  string `json:"hourPillar"`
	StartAge    string `json:"startAge"`   // 起运年龄，解析失败按 1 处理
	FirstDaYun  string `json:"firstDaYun"` // 第一步大运干支
}

// DestinyAnalysis 六个维度的命理分析，每个维度为文字加评分
type DestinyAnalysis struct {
	Summary       string `json:"summary"`
	SummaryScore  int    `json:"summaryScore"`
	Industry      string `json:"industry"`
	IndustryScore int    `json:"industryScore"`
	Wealth        string `json:"wealth"`
	WealthScore   int    `json:"wealthScore"`
	Marriage      string `json:"marriage"`
	MarriageScore int    `json:"marriageScore"`
	Health        string `json:"health"`
	HealthScore   int    `json:"healthScore"`
	Family        string `json:"family"`
	FamilyScore   int    `json:"familyScore"`
}

// LifeDestinyResult 命理分析结果，ChartData 为模型返回的命盘曲线原样透传
type LifeDestinyResult struct {
	ChartData []json.RawMessage `json:"chartData"`
	Bazi      string            `json:"bazi"`
	Analysis  DestinyAnalysis   `json:"analysis"`
}
