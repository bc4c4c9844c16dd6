package destiny

import "testing"

func TestYearStemPolarity(t *testing.T) {
	cases := []struct {
		pillar string
		want   Polarity
	}{
		{"甲子", PolarityYang},
		{"丙寅", PolarityYang},
		{"戊辰", PolarityYang},
		{"庚午", PolarityYang},
		{"壬申", PolarityYang},
		{"乙丑", PolarityYin},
		{"丁卯", PolarityYin},
		{"己巳", PolarityYin},
		{"辛未", PolarityYin},
		{"癸酉", PolarityYin},
		{"", PolarityYang},
		{"子甲", PolarityYang}, // 首字不是天干时按阳处理
	}

	for _, tc := range cases {
		if got := YearStemPolarity(tc.pillar); got != tc.want {
			t.Errorf("YearStemPolarity(%q) = %v, want %v", tc.pillar, got, tc.want)
		}
	}
}

func TestDaYunDirection(t *testing.T) {
	cases := []struct {
		gender string
		p      Polarity
		want   Direction
	}{
		{"男", PolarityYang, DirectionForward},
		{"男", PolarityYin, DirectionBackward},
		{"女", PolarityYin, DirectionForward},
		{"女", PolarityYang, DirectionBackward},
	}

	for _, tc := range cases {
		if got := DaYunDirection(tc.gender, tc.p); got != tc.want {
			t.Errorf("DaYunDirection(%q, %v) = %v, want %v", tc.gender, tc.p, got, tc.want)
		}
	}
}

func TestParseStartAge(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"5", 5},
		{" 7 ", 7},
		{"0", 0},
		{"", 1},
		{"abc", 1},
		{"3.5", 1},
	}

	for _, tc := range cases {
		if got := ParseStartAge(tc.raw); got != tc.want {
			t.Errorf("ParseStartAge(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}
