package destiny

import (
	"strconv"
	"strings"
)

// 十天干按阴阳分组，年柱首字决定大运顺逆
const (
	yangStems = "甲丙戊庚壬"
	yinStems  = "乙丁己辛癸"
)

// Polarity 天干阴阳
type Polarity string

const (
	PolarityYang Polarity = "阳"
	PolarityYin  Polarity = "阴"
)

// Direction 大运排列方向
type Direction string

const (
	DirectionForward  Direction = "顺排"
	DirectionBackward Direction = "逆排"
)

const genderMale = "男"

// YearStemPolarity 根据年柱首字判断天干阴阳，空串或无法识别的字符按阳处理
func YearStemPolarity(yearPillar string) Polarity {
	runes := []rune(yearPillar)
	if len(runes) == 0 {
		return PolarityYang
	}

	switch {
	case strings.ContainsRune(yangStems, runes[0]):
		return PolarityYang
	case strings.ContainsRune(yinStems, runes[0]):
		return PolarityYin
	default:
		return PolarityYang
	}
}

// DaYunDirection 大运顺逆：男命阳年顺排、阴年逆排，女命相反
func DaYunDirection(gender string, p Polarity) Direction {
	male := gender == genderMale
	if (male && p == PolarityYang) || (!male && p == PolarityYin) {
		return DirectionForward
	}
	return DirectionBackward
}

// ParseStartAge 解析起运年龄，空串或非数字回落为 1
func ParseStartAge(raw string) int {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return age
}
