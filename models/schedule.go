package models

// SlotDescriptor is one schedulable shift or time period, parsed from a raw
// schema field name such as "3 | Lunch (11:00-12:00)".
type SlotDescriptor struct {
	// Key is the raw schema field name; reads and writes back to the store
	// use it verbatim.
	Key       string `json:"id"`
	Label     string `json:"label"`
	TimeRange string `json:"timeRange"`
	IsMeal    bool   `json:"isMeal"`
	// Order is the explicit integer prefix of the field name, or
	// UnrankedOrder when the name carries none. Unranked slots sort after
	// every ranked one.
	Order int `json:"-"`
}

// UnrankedOrder marks a slot whose field name carries no numeric prefix.
const UnrankedOrder = int(^uint(0) >> 1)

// ScheduleMatrix is the normalized people x slot assignment view of one
// schedule container. Cells always has one row per person and one column per
// slot; missing assignments are empty strings, never omitted.
type ScheduleMatrix struct {
	People      []string         `json:"people"`
	Slots       []SlotDescriptor `json:"slots"`
	Cells       [][]string       `json:"cells"`
	ReportFlags []bool           `json:"reportFlags,omitempty"`

	ScheduleDate  string `json:"scheduleDate,omitempty"`
	ReportTime    string `json:"reportTime,omitempty"`
	TaskResetTime string `json:"taskResetTime,omitempty"`

	// Message carries a human readable explanation when the load degraded
	// to an empty matrix.
	Message string `json:"message,omitempty"`
}

// ScheduleContainer identifies one live or staging schedule container in the
// registry. DateLabel is always canonical MM/DD/YYYY.
type ScheduleContainer struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	DateLabel string `json:"dateLabel"`
	IsStaging bool   `json:"isStaging"`
}

// SchedulePair is the live/staging container pair for one date.
type SchedulePair struct {
	DateLabel string `json:"dateLabel"`
	LiveID    string `json:"liveId,omitempty"`
	StagingID string `json:"stagingId,omitempty"`
}

// WeeklyScheduleView splits a weekly container into the weekday overview and
// the weekend task schedule.
type WeeklyScheduleView struct {
	WeekLabel       string          `json:"weekLabel"`
	WeekOverview    WeekOverview    `json:"weekOverview"`
	WeekendSchedule WeekendSchedule `json:"weekendSchedule"`
}

type WeekOverview struct {
	Columns []string     `json:"columns"`
	Rows    []WeekdayRow `json:"rows"`
}

type WeekdayRow struct {
	Day         string              `json:"day"`
	Assignments map[string][]string `json:"assignments"`
}

type WeekendSchedule struct {
	Columns []string     `json:"columns"`
	Rows    []WeekendRow `json:"rows"`
}

type WeekendRow struct {
	Task        string              `json:"task"`
	Assignments map[string][]string `json:"assignments"`
}
