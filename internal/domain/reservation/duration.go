package reservation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultDurationMinutes は解釈できないラベルに使う期間
const DefaultDurationMinutes = 60

const minutesPerDay = 24 * 60

// MaxDurationMinutes を超えるラベルは解釈できないものとして扱う
const MaxDurationMinutes = 365 * minutesPerDay

var (
	minutesPattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*min`)
	hoursPattern   = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*h`)
	daysPattern    = regexp.MustCompile(`(?:^|[^\p{L}])(?:d[ií]as?|days?)(?:$|[^\p{L}])`)
	leadingNumber  = regexp.MustCompile(`^(\d+)`)
)

// DurationMinutes は期間ラベルを分に変換する。
//
//	"30 min" -> 30, "2h" -> 120, "1 hora" -> 60,
//	"Todo el día" -> 1440, "3 Días" -> 4320
//
// 解釈できない場合や MaxDurationMinutes を超える場合は DefaultDurationMinutes を返す。
// 戻り値は常に 1 以上 MaxDurationMinutes 以下。
func DurationMinutes(label string) int {
	s := strings.ToLower(strings.TrimSpace(label))

	if m := minutesPattern.FindStringSubmatch(s); m != nil {
		return withinBounds(parseNumber(m[1]))
	}
	if m := hoursPattern.FindStringSubmatch(s); m != nil {
		return withinBounds(parseNumber(m[1]) * 60)
	}
	if daysPattern.MatchString(s) {
		days := 1.0
		if m := leadingNumber.FindStringSubmatch(s); m != nil {
			if n := parseNumber(m[1]); n > 0 {
				days = n
			}
		}
		return withinBounds(days * minutesPerDay)
	}
	return DefaultDurationMinutes
}

// Duration は DurationMinutes を time.Duration で返す
func Duration(label string) time.Duration {
	return time.Duration(DurationMinutes(label)) * time.Minute
}

func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0
	}
	return f
}

// 丸める前に範囲を確認する。巨大な値を int に変換すると桁あふれする
func withinBounds(minutes float64) int {
	m := math.Round(minutes)
	if math.IsNaN(m) || m <= 0 || m > MaxDurationMinutes {
		return DefaultDurationMinutes
	}
	return int(m)
}
