package model

type JobState string

const (
	JobSubmitted JobState = "submitted"
	JobPolling   JobState = "polling"
	JobDone      JobState = "done"
	JobFailed    JobState = "failed"
	JobTimedOut  JobState = "timed_out"
)

// GenerationJob tracks one upstream generation task. It is request-scoped and
// in-memory only: the poll loop owns it for its lifetime and it is discarded
// when the orchestration call returns.
type GenerationJob struct {
	TaskHandle string
	State      JobState
	SourceURL  string // set only on Done
	Attempts   int
}

func NewGenerationJob(taskHandle string) *GenerationJob {
	return &GenerationJob{TaskHandle: taskHandle, State: JobSubmitted}
}

func (j *GenerationJob) Complete(sourceURL string) {
	j.State = JobDone
	j.SourceURL = sourceURL
}

func (j *GenerationJob) Fail()    { j.State = JobFailed }
func (j *GenerationJob) TimeOut() { j.State = JobTimedOut }

// Terminal reports whether the job reached one of its end states.
func (j *GenerationJob) Terminal() bool {
	return j.State == JobDone || j.State == JobFailed || j.State == JobTimedOut
}
