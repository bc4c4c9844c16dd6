package almanac_core

// AlmanacDay 单日老黄历数据
type AlmanacDay struct {
	Yangli    string `json:"yangli"`    // 阳历日期，如 2025-08-25
	Yinli     string `json:"yinli"`     // 阴历日期，如 乙巳(蛇)年七月初三
	Wuxing    string `json:"wuxing"`    // 五行
	Chongsha  string `json:"chongsha"`  // 冲煞
	Baiji     string `json:"baiji"`     // 彭祖百忌
	Jishen    string `json:"jishen"`    // 吉神宜趋
	Yi        string `json:"yi"`        // 宜
	Xiongshen string `json:"xiongshen"` // 凶神宜忌
	Ji        string `json:"ji"`        // 忌
}

// juheAlmanacResponse 聚合数据老黄历API响应结构
type juheAlmanacResponse struct {
	Reason    string      `json:"reason"`
	Result    *AlmanacDay `json:"result"`
	ErrorCode int         `json:"error_code"`
}
