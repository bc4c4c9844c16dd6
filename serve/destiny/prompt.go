package destiny

import (
	"fmt"
	"strings"
)

// systemInstruction 系统指令，固定的模型角色与输出格式约束
const systemInstruction = `你是一位精通子平八字与大运推算的专业命理分析师。` +
	`请严格依据用户提供的四柱与大运信息进行分析，不要自行修改命主的八字。` +
	`输出必须是一个合法的 JSON 对象，不要输出任何 JSON 以外的文字说明。`

// 顺排与逆排的示例文案，按推导出的方向二选一嵌入提示词
const (
	forwardExample  = "例如第一步大运为甲子，则后续依次为乙丑、丙寅、丁卯、戊辰，按六十甲子顺序向后排列"
	backwardExample = "例如第一步大运为甲子，则后续依次为癸亥、壬戌、辛酉、庚申，按六十甲子顺序向前排列"
)

// daYunSteps 要求模型排出的大运步数，每步十年
const daYunSteps = 8

// BuildPrompt 构造用户提示词，包含命主信息、四柱、大运排法与输出结构说明。
// 大运序列本身由模型生成，这里只根据方向挑选对应的排法说明
func BuildPrompt(input DestinyInput, direction Direction, startAge int) string {
	var b strings.Builder

	b.WriteString("请为以下命主排出完整大运并进行终身命理分析。\n\n")

	b.WriteString("【命主信息】\n")
	fmt.Fprintf(&b, "姓名：%s\n", input.Name)
	fmt.Fprintf(&b, "性别：%s\n", input.Gender)
	fmt.Fprintf(&b, "出生年份：%s\n\n", input.BirthYear)

	b.WriteString("【四柱八字】\n")
	fmt.Fprintf(&b, "年柱：%s\n", input.YearPillar)
	fmt.Fprintf(&b, "月柱：%s\n", input.MonthPillar)
	fmt.Fprintf(&b, "日柱：%s\n", input.DayPillar)
	fmt.Fprintf(&b, "时柱：%s\n\n", input.HourPillar)

	b.WriteString("【大运排法】\n")
	fmt.Fprintf(&b, "起运年龄：%d岁\n", startAge)
	fmt.Fprintf(&b, "第一步大运：%s\n", input.FirstDaYun)
	fmt.Fprintf(&b, "排列方向：%s\n", direction)
	if direction == DirectionForward {
		b.WriteString(forwardExample + "。\n")
	} else {
		b.WriteString(backwardExample + "。\n")
	}
	fmt.Fprintf(&b, "请从第一步大运%s开始，按上述方向连续排出%d步大运，每步十年，并结合命局走势为每个大运年龄点给出运势评分。\n\n",
		input.FirstDaYun, daYunSteps)

	b.WriteString("【输出要求】\n")
	b.WriteString("只输出一个 JSON 对象，字段如下：\n")
	b.WriteString(`{"chartPoints":[{"age":数字,"pillar":"干支","score":数字},...],` + "\n")
	b.WriteString(`"bazi":"八字概述",` + "\n")
	b.WriteString(`"summary":"命局总评","summaryScore":评分,` + "\n")
	b.WriteString(`"industry":"事业行业分析","industryScore":评分,` + "\n")
	b.WriteString(`"wealth":"财富分析","wealthScore":评分,` + "\n")
	b.WriteString(`"marriage":"婚姻感情分析","marriageScore":评分,` + "\n")
	b.WriteString(`"health":"健康分析","healthScore":评分,` + "\n")
	b.WriteString(`"family":"六亲家庭分析","familyScore":评分}` + "\n")
	b.WriteString("所有评分为0到10的整数。\n")

	return b.String()
}
