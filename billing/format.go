package billing

import (
	"strconv"
	"strings"
	"time"
)

// DisplayZone is India Standard Time. A fixed offset keeps output identical
// on hosts without a tz database.
var DisplayZone = time.FixedZone("IST", 5*60*60+30*60)

const (
	rupeeSymbol = "₹"
	dateLayout  = "02 Jan 2006, 03:04 pm"
)

// FormatCurrency renders a whole-rupee amount with the rupee sign and Indian
// digit grouping, e.g. 1234560 -> "₹12,34,560".
func FormatCurrency(amount int64) string {
	if amount < 0 {
		// -amount overflows for MinInt64; go through uint64.
		return "-" + rupeeSymbol + groupIndian(strconv.FormatUint(uint64(-(amount+1))+1, 10))
	}
	return rupeeSymbol + groupIndian(strconv.FormatInt(amount, 10))
}

// groupIndian groups the last three digits together and the rest in pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/2)
	lead := len(head) % 2
	if lead == 1 {
		b.WriteString(head[:1])
	}
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

// FormatDate renders a Unix nanosecond timestamp as "DD Mon YYYY, hh:mm am"
// in India Standard Time. Sub-millisecond precision is truncated. Use it for
// display only; order by the raw timestamp.
func FormatDate(timestamp int64) string {
	return time.UnixMilli(timestamp / 1_000_000).In(DisplayZone).Format(dateLayout)
}

// FormatDay renders only the date part of FormatDate.
func FormatDay(timestamp int64) string {
	s := FormatDate(timestamp)
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[:i]
	}
	return s
}
