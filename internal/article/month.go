package article

import (
	"time"

	"caiary/packages/response"
)

// MonthRange 返回某年某月在 loc 时区下的 [月初, 下月初) 区间，转换为 UTC
func MonthRange(year, month int, loc *time.Location) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("月份必须在 1 到 12 之间"),
		)
	}
	if year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("无效的年份"),
		)
	}
	if loc == nil {
		loc = time.UTC
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)
	return start.UTC(), end.UTC(), nil
}
