package festival

import (
	"sort"
	"strings"
	"time"

	"github.com/username/chrono-server/pkg/dateutil"
)

// Festival is one catalog entry: a named rule. Catalogs are static,
// process-wide, read-only configuration.
type Festival struct {
	Name   string // English name
	NameZh string // Chinese name, empty for US entries
	Rule   Rule
}

// Resolved is a catalog entry projected onto a concrete year
type Resolved struct {
	Name   string `json:"name"`
	NameZh string `json:"nameZh,omitempty"`
	Date   string `json:"date"`
}

// ChinaFestivals lists traditional Chinese festivals, both lunar and solar.
// For lunar entries the target year is the lunar year.
var ChinaFestivals = []Festival{
	{Name: "Spring Festival", NameZh: "春节", Rule: LunarRule{Month: 1, Day: 1}},
	{Name: "Lantern Festival", NameZh: "元宵节", Rule: LunarRule{Month: 1, Day: 15}},
	{Name: "Dragon Head Raising", NameZh: "龙抬头", Rule: LunarRule{Month: 2, Day: 2}},
	{Name: "Shangsi Festival", NameZh: "上巳节", Rule: LunarRule{Month: 3, Day: 3}},
	{Name: "Qingming Festival", NameZh: "清明节", Rule: FixedRule{Month: time.April, Day: 5}},
	{Name: "Dragon Boat Festival", NameZh: "端午节", Rule: LunarRule{Month: 5, Day: 5}},
	{Name: "Qixi Festival", NameZh: "七夕节", Rule: LunarRule{Month: 7, Day: 7}},
	{Name: "Ghost Festival", NameZh: "中元节", Rule: LunarRule{Month: 7, Day: 15}},
	{Name: "Mid-Autumn Festival", NameZh: "中秋节", Rule: LunarRule{Month: 8, Day: 15}},
	{Name: "Double Ninth Festival", NameZh: "重阳节", Rule: LunarRule{Month: 9, Day: 9}},
	{Name: "Hanyi Festival", NameZh: "寒衣节", Rule: LunarRule{Month: 10, Day: 1}},
	{Name: "Xiayuan Festival", NameZh: "下元节", Rule: LunarRule{Month: 10, Day: 15}},
	{Name: "Winter Solstice", NameZh: "冬至", Rule: FixedRule{Month: time.December, Day: 22}},
	{Name: "Laba Festival", NameZh: "腊八节", Rule: LunarRule{Month: 12, Day: 8}},
	{Name: "Little New Year", NameZh: "小年", Rule: LunarRule{Month: 12, Day: 23}},
	// 除夕 is the last day of the lunar year; the 12th month has 29 or 30
	// days depending on the year, hence the fallback.
	{Name: "New Year's Eve", NameZh: "除夕", Rule: LunarRule{Month: 12, Day: 30, Day29Fallback: true}},

	{Name: "New Year's Day", NameZh: "元旦", Rule: FixedRule{Month: time.January, Day: 1}},
	{Name: "Valentine's Day", NameZh: "情人节", Rule: FixedRule{Month: time.February, Day: 14}},
	{Name: "Women's Day", NameZh: "妇女节", Rule: FixedRule{Month: time.March, Day: 8}},
	{Name: "Arbor Day", NameZh: "植树节", Rule: FixedRule{Month: time.March, Day: 12}},
	{Name: "Labour Day", NameZh: "劳动节", Rule: FixedRule{Month: time.May, Day: 1}},
	{Name: "Youth Day", NameZh: "青年节", Rule: FixedRule{Month: time.May, Day: 4}},
	{Name: "Children's Day", NameZh: "儿童节", Rule: FixedRule{Month: time.June, Day: 1}},
	{Name: "CPC Founding Day", NameZh: "建党节", Rule: FixedRule{Month: time.July, Day: 1}},
	{Name: "Army Day", NameZh: "建军节", Rule: FixedRule{Month: time.August, Day: 1}},
	{Name: "Teachers' Day", NameZh: "教师节", Rule: FixedRule{Month: time.September, Day: 10}},
	{Name: "National Day", NameZh: "国庆节", Rule: FixedRule{Month: time.October, Day: 1}},
}

// USFestivals lists US federal holidays
var USFestivals = []Festival{
	{Name: "New Year's Day", Rule: FixedRule{Month: time.January, Day: 1}},
	{Name: "Martin Luther King Jr. Day", Rule: NthWeekdayRule{Month: time.January, Weekday: time.Monday, N: 3}},
	{Name: "Presidents' Day", Rule: NthWeekdayRule{Month: time.February, Weekday: time.Monday, N: 3}},
	{Name: "Memorial Day", Rule: NthWeekdayRule{Month: time.May, Weekday: time.Monday, N: -1}},
	{Name: "Independence Day", Rule: FixedRule{Month: time.July, Day: 4}},
	{Name: "Labor Day", Rule: NthWeekdayRule{Month: time.September, Weekday: time.Monday, N: 1}},
	{Name: "Columbus Day", Rule: NthWeekdayRule{Month: time.October, Weekday: time.Monday, N: 2}},
	{Name: "Veterans Day", Rule: FixedRule{Month: time.November, Day: 11}},
	{Name: "Thanksgiving", Rule: NthWeekdayRule{Month: time.November, Weekday: time.Thursday, N: 4}},
	{Name: "Christmas", Rule: FixedRule{Month: time.December, Day: 25}},
}

// HongKongFestivals lists Hong Kong statutory public holidays (法定公众假期)
var HongKongFestivals = []Festival{
	{Name: "New Year's Day", NameZh: "元旦", Rule: FixedRule{Month: time.January, Day: 1}},
	{Name: "Labour Day", NameZh: "劳动节", Rule: FixedRule{Month: time.May, Day: 1}},
	{Name: "HKSAR Establishment Day", NameZh: "香港特别行政区成立纪念日", Rule: FixedRule{Month: time.July, Day: 1}},
	{Name: "National Day", NameZh: "国庆日", Rule: FixedRule{Month: time.October, Day: 1}},
	{Name: "Christmas Day", NameZh: "圣诞节", Rule: FixedRule{Month: time.December, Day: 25}},
	{Name: "Boxing Day", NameZh: "圣诞节翌日", Rule: FixedRule{Month: time.December, Day: 26}},

	{Name: "Lunar New Year's Day", NameZh: "农历年初一", Rule: LunarRule{Month: 1, Day: 1}},
	{Name: "Lunar New Year's Day 2", NameZh: "农历年初二", Rule: LunarRule{Month: 1, Day: 2}},
	{Name: "Lunar New Year's Day 3", NameZh: "农历年初三", Rule: LunarRule{Month: 1, Day: 3}},
	{Name: "Buddha's Birthday", NameZh: "佛诞", Rule: LunarRule{Month: 4, Day: 8}},
	{Name: "Tuen Ng Festival", NameZh: "端午节", Rule: LunarRule{Month: 5, Day: 5}},
	{Name: "Mid-Autumn Festival", NameZh: "中秋节翌日", Rule: LunarRule{Month: 8, Day: 16}},
	{Name: "Chung Yeung Festival", NameZh: "重阳节", Rule: LunarRule{Month: 9, Day: 9}},

	{Name: "Ching Ming Festival", NameZh: "清明节", Rule: ComputedRule{Algo: AlgoQingming}},
	{Name: "Good Friday", NameZh: "耶稣受难节", Rule: ComputedRule{Algo: AlgoEaster, Offset: -2}},
	{Name: "Day after Good Friday", NameZh: "耶稣受难节翌日", Rule: ComputedRule{Algo: AlgoEaster, Offset: -1}},
	{Name: "Easter Monday", NameZh: "复活节星期一", Rule: ComputedRule{Algo: AlgoEaster, Offset: 1}},
}

// catalogs in anchor-resolution order: China first, then US, then Hong Kong
var catalogs = [][]Festival{ChinaFestivals, USFestivals, HongKongFestivals}

// Find looks a festival up by case-insensitive English name or exact
// Chinese name, searching the China catalog first.
func Find(name string) (Festival, bool) {
	lower := strings.ToLower(name)
	for _, catalog := range catalogs {
		for _, f := range catalog {
			if strings.ToLower(f.Name) == lower || (f.NameZh != "" && f.NameZh == name) {
				return f, true
			}
		}
	}
	return Festival{}, false
}

// ResolveByName resolves a festival name to a date for the given year.
// The boolean is false when the name is unknown or the festival does not
// occur that year.
func ResolveByName(name string, year int) (time.Time, bool) {
	f, ok := Find(name)
	if !ok {
		return time.Time{}, false
	}
	return Resolve(f.Rule, year)
}

// ForYear resolves every entry of a catalog for a year, sorted by date.
// Entries that do not occur that year are skipped.
func ForYear(catalog []Festival, year int) []Resolved {
	out := make([]Resolved, 0, len(catalog))
	for _, f := range catalog {
		if t, ok := Resolve(f.Rule, year); ok {
			out = append(out, Resolved{
				Name:   f.Name,
				NameZh: f.NameZh,
				Date:   dateutil.FormatISO(t),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
