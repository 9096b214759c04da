package task

import (
	"strconv"
	"sync"
)

// fakeAPI is the in-memory backend the cache tests reconcile against.
type fakeAPI struct {
	serverTasks []Task
	users       []User

	createErr error
	updateErr error
	deleteErr error
	assignErr error
	getErr    error

	created  []Task
	updates  []updateCall
	deleted  []string
	assigned map[string][]string
	nextID   int

	// onGetTasks runs in the middle of a refresh, before the response lands
	onGetTasks func()

	mx sync.Mutex
}

type updateCall struct {
	id    string
	patch Patch
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{assigned: map[string][]string{}, nextID: 100}
}

func (f *fakeAPI) GetTasks(projectID string) ([]Task, error) {
	if f.onGetTasks != nil {
		f.onGetTasks()
	}
	f.mx.Lock()
	defer f.mx.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	var tasks []Task
	for _, t := range f.serverTasks {
		if projectID == "" || t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (f *fakeAPI) CreateTask(draft Task) (*Task, error) {
	f.mx.Lock()
	defer f.mx.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	created := draft
	created.ID = strconv.Itoa(f.nextID)
	f.created = append(f.created, created)
	f.serverTasks = append(f.serverTasks, created)
	return &created, nil
}

func (f *fakeAPI) UpdateTask(id string, patch Patch) (*Task, error) {
	f.mx.Lock()
	defer f.mx.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updates = append(f.updates, updateCall{id: id, patch: patch})
	for i := range f.serverTasks {
		if f.serverTasks[i].ID == id {
			f.serverTasks[i].apply(patch)
			updated := f.serverTasks[i].clone()
			return &updated, nil
		}
	}
	return nil, ErrTaskNotFound
}

func (f *fakeAPI) DeleteTask(id string) error {
	f.mx.Lock()
	defer f.mx.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) AssignUsers(taskID string, userIDs []string) error {
	f.mx.Lock()
	defer f.mx.Unlock()
	if f.assignErr != nil {
		return f.assignErr
	}
	f.assigned[taskID] = userIDs
	for i := range f.serverTasks {
		if f.serverTasks[i].ID == taskID {
			f.serverTasks[i].AssigneeIDs = userIDs
		}
	}
	return nil
}

func (f *fakeAPI) GetUsers() ([]User, error) {
	return f.users, nil
}

// asyncQueue replaces the cache's goroutine launcher so tests control exactly
// when background pushes run.
type asyncQueue struct {
	fns []func()
}

func (q *asyncQueue) run(fn func()) {
	q.fns = append(q.fns, fn)
}

func (q *asyncQueue) drain() {
	for len(q.fns) > 0 {
		fn := q.fns[0]
		q.fns = q.fns[1:]
		fn()
	}
}

type taskErr struct {
	taskID    string
	projectID string
	err       error
}

type recordingNotifier struct {
	errs     []error
	taskErrs []taskErr
}

func (n *recordingNotifier) NotifyError(err error) {
	n.errs = append(n.errs, err)
}

func (n *recordingNotifier) NotifyTaskError(taskID, projectID string, err error) {
	n.errs = append(n.errs, err)
	n.taskErrs = append(n.taskErrs, taskErr{taskID: taskID, projectID: projectID, err: err})
}

func newTestCache(api API) (*Cache, *asyncQueue, *recordingNotifier) {
	q := &asyncQueue{}
	n := &recordingNotifier{}
	c := NewCache(api, n)
	c.runAsync = q.run
	return c, q, n
}
