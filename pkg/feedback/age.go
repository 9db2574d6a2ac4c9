package feedback

import (
	"fmt"
	"time"
)

// Age renders how long ago ts was, relative to now
func Age(ts, now time.Time) string {
	days := int(now.Sub(ts).Hours() / 24)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days > 1 && days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days >= 7 && days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	default:
		return ts.Format("Jan 2, 2006")
	}
}
