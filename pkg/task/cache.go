package task

import (
	"errors"
	"log"
	"sync"

	gouuid "github.com/nu7hatch/gouuid"
)

var (
	ErrNoProject      = errors.New("cannot create a task without a project")
	ErrCreateInFlight = errors.New("task creation already in progress")
	ErrTaskNotFound   = errors.New("task not found")
)

// Cache mirrors backend task records into local projections and lets callers
// mutate them optimistically. Edits are applied locally first and pushed to
// the backend in the background; push failures are logged and notified but
// never rolled back. The next Refresh is the reconciliation point. Callers
// must treat this as the documented consistency model, not as data loss.
//
// Every local edit gets a revision from a global counter. Refresh records the
// counter when it starts and keeps any row edited after that point, so a slow
// refresh response cannot silently clobber a newer local edit.
type Cache struct {
	api    API
	notify ErrorNotifier

	rows     []*row
	revision uint64
	creating bool

	// runAsync fires background pushes; tests swap it for an inline runner.
	runAsync func(fn func())

	mx sync.Mutex
}

type row struct {
	task     Task
	revision uint64
}

func NewCache(api API, notify ErrorNotifier) *Cache {
	return &Cache{
		api:      api,
		notify:   notify,
		runAsync: func(fn func()) { go fn() },
	}
}

// Create inserts an optimistic placeholder immediately and fires the create
// request. On success the placeholder is swapped for the server record. At
// most one create is in flight at a time; a second call while one is pending
// returns ErrCreateInFlight and changes nothing. A draft without a project is
// rejected before anything happens.
func (c *Cache) Create(draft Task) (*Task, error) {
	if draft.ProjectID == "" {
		return nil, ErrNoProject
	}

	c.mx.Lock()
	if c.creating {
		c.mx.Unlock()
		return nil, ErrCreateInFlight
	}
	c.creating = true

	u4, err := gouuid.NewV4()
	if err != nil {
		c.creating = false
		c.mx.Unlock()
		return nil, err
	}
	placeholderID := "local-" + u4.String()

	draft.ID = placeholderID
	if draft.Status == "" {
		draft.Status = StatusToDo
	}
	if draft.Priority == "" {
		draft.Priority = PriorityMedium
	}
	if draft.CustomFields == nil {
		draft.CustomFields = map[string]interface{}{}
	}
	draft.AssigneeIDs = uniqueIDs(draft.AssigneeIDs)

	c.revision++
	c.rows = append(c.rows, &row{task: draft, revision: c.revision})
	optimistic := draft.clone()
	// the goroutine gets its own copy; the cached row's maps stay mutable
	// under the lock without the push racing against them
	payload := draft.clone()
	c.mx.Unlock()

	c.runAsync(func() {
		created, err := c.api.CreateTask(payload)

		c.mx.Lock()
		c.creating = false
		if err == nil && created != nil {
			for _, r := range c.rows {
				if r.task.ID == placeholderID {
					r.task.ID = created.ID
					r.task.TimeTracked = created.TimeTracked
					break
				}
			}
		}
		c.mx.Unlock()

		if err != nil {
			// the placeholder stays visible until the next refresh reconciles it
			log.Println("task create failed:", err)
			if c.notify != nil {
				c.notify.NotifyTaskError(placeholderID, payload.ProjectID, err)
			}
		}
	})

	return &optimistic, nil
}

// Update merges the patch into the local copy immediately and pushes it in
// the background. A failed push leaves the optimistic state in place.
func (c *Cache) Update(id string, patch Patch) error {
	c.mx.Lock()
	r := c.findLocked(id)
	if r == nil {
		c.mx.Unlock()
		return ErrTaskNotFound
	}
	r.task.apply(patch)
	c.revision++
	r.revision = c.revision
	sentAt := r.revision
	projectID := r.task.ProjectID
	c.mx.Unlock()

	c.runAsync(func() {
		updated, err := c.api.UpdateTask(id, patch)
		if err != nil {
			log.Println("task update failed:", err)
			if c.notify != nil {
				c.notify.NotifyTaskError(id, projectID, err)
			}
			return
		}
		if updated == nil {
			return
		}

		c.mx.Lock()
		defer c.mx.Unlock()
		r := c.findLocked(id)
		// only fold the server echo back in if nothing newer happened locally
		if r != nil && r.revision == sentAt {
			r.task = *updated
		}
	})

	return nil
}

// Move is the status-change helper the board uses.
func (c *Cache) Move(id string, status Status) error {
	return c.Update(id, Patch{Status: &status})
}

// Delete removes the task locally and pushes the delete in the background.
func (c *Cache) Delete(id string) error {
	c.mx.Lock()
	found := false
	projectID := ""
	rows := c.rows[:0]
	for _, r := range c.rows {
		if r.task.ID == id {
			found = true
			projectID = r.task.ProjectID
			continue
		}
		rows = append(rows, r)
	}
	c.rows = rows
	c.mx.Unlock()

	if !found {
		return ErrTaskNotFound
	}

	c.runAsync(func() {
		if err := c.api.DeleteTask(id); err != nil {
			log.Println("task delete failed:", err)
			if c.notify != nil {
				c.notify.NotifyTaskError(id, projectID, err)
			}
		}
	})
	return nil
}

// TasksForProject returns the project's tasks in presentation order. The
// result reflects all optimistic edits applied so far.
func (c *Cache) TasksForProject(projectID string) []Task {
	c.mx.Lock()
	defer c.mx.Unlock()
	var tasks []Task
	for _, r := range c.rows {
		if r.task.ProjectID == projectID {
			tasks = append(tasks, r.task.clone())
		}
	}
	return tasks
}

// Task returns a single task by id.
func (c *Cache) Task(id string) (Task, bool) {
	c.mx.Lock()
	defer c.mx.Unlock()
	if r := c.findLocked(id); r != nil {
		return r.task.clone(), true
	}
	return Task{}, false
}

// Refresh replaces the project's rows with the authoritative server rows; an
// empty project id refreshes everything. Rows edited after the refresh
// started keep their local state; everything else, optimistic placeholders
// included, is reconciled away.
func (c *Cache) Refresh(projectID string) error {
	c.mx.Lock()
	sinceRev := c.revision
	c.mx.Unlock()

	serverTasks, err := c.api.GetTasks(projectID)
	if err != nil {
		return err
	}

	c.mx.Lock()
	defer c.mx.Unlock()

	keptLocal := make(map[string]bool)
	rows := c.rows[:0]
	for _, r := range c.rows {
		if projectID != "" && r.task.ProjectID != projectID {
			rows = append(rows, r)
			continue
		}
		if r.revision > sinceRev {
			keptLocal[r.task.ID] = true
			rows = append(rows, r)
		}
	}
	c.rows = rows

	for i := range serverTasks {
		t := serverTasks[i]
		if keptLocal[t.ID] {
			continue
		}
		c.rows = append(c.rows, &row{task: t})
	}
	return nil
}

// Reorder applies a caller-defined presentation order to one project's tasks.
// This is purely local; ids not listed keep their relative order after the
// listed ones, and other projects' tasks do not move at all.
func (c *Cache) Reorder(projectID string, ids []string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	var project []*row
	for _, r := range c.rows {
		if r.task.ProjectID == projectID {
			project = append(project, r)
		}
	}
	if len(project) == 0 {
		return
	}

	byID := make(map[string]*row, len(project))
	for _, r := range project {
		byID[r.task.ID] = r
	}

	ordered := make([]*row, 0, len(project))
	taken := make(map[string]bool, len(project))
	for _, id := range ids {
		if r, ok := byID[id]; ok && !taken[id] {
			ordered = append(ordered, r)
			taken[id] = true
		}
	}
	for _, r := range project {
		if !taken[r.task.ID] {
			ordered = append(ordered, r)
		}
	}

	// fill the project's original slots with the new order
	i := 0
	for idx, r := range c.rows {
		if r.task.ProjectID == projectID {
			c.rows[idx] = ordered[i]
			i++
		}
	}
}

// StripCustomField drops a removed field's key from every task that carries
// it, locally first, then pushes each affected task's custom-field bag.
func (c *Cache) StripCustomField(fieldID string) {
	c.mx.Lock()
	type push struct {
		id        string
		projectID string
		fields    map[string]interface{}
	}
	var pushes []push
	for _, r := range c.rows {
		if r.task.CustomFields == nil {
			continue
		}
		if _, ok := r.task.CustomFields[fieldID]; !ok {
			continue
		}
		delete(r.task.CustomFields, fieldID)
		c.revision++
		r.revision = c.revision

		fields := make(map[string]interface{}, len(r.task.CustomFields))
		for k, v := range r.task.CustomFields {
			fields[k] = v
		}
		pushes = append(pushes, push{id: r.task.ID, projectID: r.task.ProjectID, fields: fields})
	}
	c.mx.Unlock()

	for _, p := range pushes {
		p := p
		c.runAsync(func() {
			if _, err := c.api.UpdateTask(p.id, Patch{CustomFields: p.fields}); err != nil {
				log.Println("custom field strip push failed:", err)
				if c.notify != nil {
					c.notify.NotifyTaskError(p.id, p.projectID, err)
				}
			}
		})
	}
}

func (c *Cache) findLocked(id string) *row {
	for _, r := range c.rows {
		if r.task.ID == id {
			return r
		}
	}
	return nil
}
