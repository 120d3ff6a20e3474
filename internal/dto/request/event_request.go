package request

// ScheduleRequest describes one recurring block of occurrences. Weekdays
// use 0 for Monday through 6 for Sunday. Without to_date a single
// occurrence is created on from_date and weekdays are ignored.
type ScheduleRequest struct {
	FromDate  string `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate    string `json:"to_date" validate:"omitempty,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Weekdays  []int  `json:"weekdays" validate:"dive,min=0,max=6"`
}

type CreateEventRequest struct {
	Name        string            `json:"name" validate:"required,min=2,max=100"`
	Description string            `json:"description" validate:"max=2000"`
	Price       float64           `json:"price" validate:"min=0"`
	Vacancies   int               `json:"vacancies" validate:"required,min=1"`
	Schedules   []ScheduleRequest `json:"schedules" validate:"required,min=1,dive"`
	CategoryIDs []string          `json:"category_ids" validate:"dive,uuid4"`
	TagIDs      []string          `json:"tag_ids" validate:"dive,uuid4"`
}

type UpdateEventRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"min=0"`
}

type UpdateOccurrenceRequest struct {
	Start     string `json:"start" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	End       string `json:"end" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Vacancies int    `json:"vacancies" validate:"min=0"`
}

// CancelRequest carries an optional reason. An empty reason falls back to
// the configured default.
type CancelRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}
