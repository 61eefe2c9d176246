package dto

import "time"

type AggregateInput struct {
	Mode string
}

type UserTotalOutput struct {
	UserID  string
	Seconds float64
	Hours   float64
	Active  bool
}

type WeekOutput struct {
	Start time.Time
	End   time.Time
	Users []UserTotalOutput
}

type AggregateOutput struct {
	Mode  string
	Now   time.Time
	Week  WeekOutput
	Users []UserTotalOutput
	Weeks []WeekOutput
}

type SummaryOutput struct {
	Now         time.Time
	Anchor      time.Weekday
	Timezone    string
	CurrentWeek WeekOutput
	AllTime     []UserTotalOutput
	Weeks       []WeekOutput
}

type ExportInput struct {
	Dir string
}

type ExportOutput struct {
	Path     string
	Week     time.Time
	Users    int
	Replaced bool
}
