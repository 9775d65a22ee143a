package assessment

import "time"

func unixUTC(ts int64) time.Time { return time.Unix(ts, 0).UTC() }
