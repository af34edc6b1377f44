package chronotool

import "strings"

// zoneInfo is static metadata for a well-known IANA timezone
type zoneInfo struct {
	Name   string
	CityZh string
}

// knownZones is the curated timezone directory served by list_timezones.
// Offsets are computed live so DST is always current.
var knownZones = []zoneInfo{
	{"Africa/Cairo", "开罗"},
	{"Africa/Johannesburg", "约翰内斯堡"},
	{"Africa/Lagos", "拉各斯"},
	{"Africa/Nairobi", "内罗毕"},
	{"America/Anchorage", "安克雷奇"},
	{"America/Argentina/Buenos_Aires", "布宜诺斯艾利斯"},
	{"America/Bogota", "波哥大"},
	{"America/Chicago", "芝加哥"},
	{"America/Denver", "丹佛"},
	{"America/Lima", "利马"},
	{"America/Los_Angeles", "洛杉矶"},
	{"America/Mexico_City", "墨西哥城"},
	{"America/New_York", "纽约"},
	{"America/Phoenix", "凤凰城"},
	{"America/Santiago", "圣地亚哥"},
	{"America/Sao_Paulo", "圣保罗"},
	{"America/Toronto", "多伦多"},
	{"America/Vancouver", "温哥华"},
	{"Asia/Bangkok", "曼谷"},
	{"Asia/Dhaka", "达卡"},
	{"Asia/Dubai", "迪拜"},
	{"Asia/Hong_Kong", "香港"},
	{"Asia/Jakarta", "雅加达"},
	{"Asia/Jerusalem", "耶路撒冷"},
	{"Asia/Karachi", "卡拉奇"},
	{"Asia/Kolkata", "加尔各答"},
	{"Asia/Kuala_Lumpur", "吉隆坡"},
	{"Asia/Macau", "澳门"},
	{"Asia/Manila", "马尼拉"},
	{"Asia/Riyadh", "利雅得"},
	{"Asia/Seoul", "首尔"},
	{"Asia/Shanghai", "上海"},
	{"Asia/Singapore", "新加坡"},
	{"Asia/Taipei", "台北"},
	{"Asia/Tehran", "德黑兰"},
	{"Asia/Tokyo", "东京"},
	{"Asia/Urumqi", "乌鲁木齐"},
	{"Atlantic/Reykjavik", "雷克雅未克"},
	{"Australia/Adelaide", "阿德莱德"},
	{"Australia/Brisbane", "布里斯班"},
	{"Australia/Melbourne", "墨尔本"},
	{"Australia/Perth", "珀斯"},
	{"Australia/Sydney", "悉尼"},
	{"Europe/Amsterdam", "阿姆斯特丹"},
	{"Europe/Athens", "雅典"},
	{"Europe/Berlin", "柏林"},
	{"Europe/Brussels", "布鲁塞尔"},
	{"Europe/Dublin", "都柏林"},
	{"Europe/Helsinki", "赫尔辛基"},
	{"Europe/Istanbul", "伊斯坦布尔"},
	{"Europe/Lisbon", "里斯本"},
	{"Europe/London", "伦敦"},
	{"Europe/Madrid", "马德里"},
	{"Europe/Moscow", "莫斯科"},
	{"Europe/Paris", "巴黎"},
	{"Europe/Prague", "布拉格"},
	{"Europe/Rome", "罗马"},
	{"Europe/Stockholm", "斯德哥尔摩"},
	{"Europe/Vienna", "维也纳"},
	{"Europe/Warsaw", "华沙"},
	{"Europe/Zurich", "苏黎世"},
	{"Pacific/Auckland", "奥克兰"},
	{"Pacific/Honolulu", "檀香山"},
	{"UTC", "协调世界时"},
}

// zoneContinent extracts the region prefix of an IANA zone name
func zoneContinent(name string) string {
	if i := strings.Index(name, "/"); i >= 0 {
		return name[:i]
	}
	return name
}

// zoneCity returns the last path segment with underscores replaced
func zoneCity(name string) string {
	city := name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		city = name[i+1:]
	}
	return strings.ReplaceAll(city, "_", " ")
}

// matchZone reports whether a zone matches a free-text query against its
// name, city, or Chinese city name
func matchZone(z zoneInfo, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(z.Name), q) ||
		strings.Contains(strings.ToLower(zoneCity(z.Name)), q) ||
		strings.Contains(z.CityZh, query)
}
