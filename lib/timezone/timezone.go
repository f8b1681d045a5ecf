package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
}

// pin the timezone to where the publication operates, since the
// deployment region is not guaranteed and date arithmetic based on
// <time.Time>.Year()/Month()/Day() would drift otherwise
func Now() time.Time {
	return time.Now().In(Location)
}
