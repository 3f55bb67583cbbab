package handlers

// HandlerBundle groups the handlers wired in main for route registration.
type HandlerBundle struct {
	Schedule *ScheduleHandler
	Reports  *ReportHandler
	Tasks    *TaskHandler
}
