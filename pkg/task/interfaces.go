package task

// API is the backend surface the cache reconciles against. The concrete
// implementation lives in pkg/client.
type API interface {
	GetTasks(projectID string) ([]Task, error)
	CreateTask(draft Task) (*Task, error)
	UpdateTask(id string, patch Patch) (*Task, error)
	DeleteTask(id string) error
	AssignUsers(taskID string, userIDs []string) error
	GetUsers() ([]User, error)
}

// ErrorNotifier receives failures from background reconciliation calls.
// Push failures carry the task and project they belong to.
type ErrorNotifier interface {
	NotifyError(err error)
	NotifyTaskError(taskID, projectID string, err error)
}
