package localization

// WorkflowStatus is the coarse status derived over all jobs sharing a
// catalog product
type WorkflowStatus string

const (
	WorkflowStatusPending   WorkflowStatus = "pending"
	WorkflowStatusRunning   WorkflowStatus = "running"
	WorkflowStatusCompleted WorkflowStatus = "completed"
	WorkflowStatusFailed    WorkflowStatus = "failed"
)

// WorkflowProgress is the derived aggregate over a workflow's jobs. It
// is a snapshot; computing it never mutates anything.
type WorkflowProgress struct {
	TotalJobs      int            `json:"total_jobs"`
	CompletedJobs  int            `json:"completed_jobs"`
	FailedJobs     int            `json:"failed_jobs"`
	RunningJobs    int            `json:"running_jobs"`
	PendingJobs    int            `json:"pending_jobs"`
	StaleJobs      int            `json:"stale_jobs,omitempty"`
	OverallPercent int            `json:"overall_percent"`
	Status         WorkflowStatus `json:"status"`
}

// ComputeProgress derives workflow progress from a job snapshot. The
// result is stable under any job ordering. Completed is reported only
// when every job completed; failed only when nothing can still run and
// at least one job failed.
func ComputeProgress(jobs []*LocalizationJob) WorkflowProgress {
	progress := WorkflowProgress{Status: WorkflowStatusPending}
	if len(jobs) == 0 {
		return progress
	}

	for _, job := range jobs {
		progress.TotalJobs++
		switch job.Status {
		case JobStatusCompleted:
			progress.CompletedJobs++
		case JobStatusFailed:
			progress.FailedJobs++
		case JobStatusRunning:
			progress.RunningJobs++
		case JobStatusPending:
			progress.PendingJobs++
		}
	}

	progress.OverallPercent = progress.CompletedJobs * 100 / progress.TotalJobs

	switch {
	case progress.CompletedJobs == progress.TotalJobs:
		progress.Status = WorkflowStatusCompleted
	case progress.RunningJobs == 0 && progress.PendingJobs == 0 && progress.FailedJobs > 0:
		progress.Status = WorkflowStatusFailed
	case progress.RunningJobs > 0:
		progress.Status = WorkflowStatusRunning
	default:
		progress.Status = WorkflowStatusPending
	}

	return progress
}
