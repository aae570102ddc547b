package analytics

import "time"

const DefaultRange = "7d"

// Range is a resolved range token. Start is inclusive. Param is the value as
// requested, echoed back by trend reports even when it was not recognised.
type Range struct {
	Token string
	Param string
	Start time.Time
}

// ParseRange resolves 7d, 30d, 90d and 1y relative to now. Anything else is
// treated as 7d.
func ParseRange(token string, now time.Time) Range {
	param := token
	if param == "" {
		param = DefaultRange
	}

	switch token {
	case "30d":
		return Range{Token: token, Param: param, Start: now.AddDate(0, 0, -30)}
	case "90d":
		return Range{Token: token, Param: param, Start: now.AddDate(0, 0, -90)}
	case "1y":
		return Range{Token: token, Param: param, Start: now.AddDate(-1, 0, 0)}
	default:
		return Range{Token: DefaultRange, Param: param, Start: now.AddDate(0, 0, -7)}
	}
}
