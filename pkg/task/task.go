package task

type Status string

const (
	StatusToDo       Status = "to-do"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Task is the client projection of a backend task record. The cache owns the
// in-memory copy; the backend owns the durable one, and the copy is allowed
// to run ahead of the backend between an optimistic write and the next
// refresh.
//
// IDs are strings on this side of the wire. A task created optimistically
// carries a placeholder id until the server assigns the real one.
type Task struct {
	ID           string                 `json:"id"`
	ProjectID    string                 `json:"projectId"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description,omitempty"`
	DueDate      string                 `json:"dueDate,omitempty"`
	Priority     Priority               `json:"priority"`
	Status       Status                 `json:"status"`
	Progress     int                    `json:"progress"`
	AssigneeIDs  []string               `json:"assigneeIds"`
	CustomFields map[string]interface{} `json:"customFields"`
	TimeTracked  int64                  `json:"timeTracked,omitempty"`
}

// Patch is a partial task update. Nil pointers mean "leave untouched"; a nil
// CustomFields map likewise.
type Patch struct {
	Name         *string
	Description  *string
	ProjectID    *string
	DueDate      *string
	Priority     *Priority
	Status       *Status
	Progress     *int
	AssigneeIDs  *[]string
	CustomFields map[string]interface{}
}

func (t *Task) apply(p Patch) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Progress != nil {
		t.Progress = *p.Progress
	}
	if p.AssigneeIDs != nil {
		t.AssigneeIDs = uniqueIDs(*p.AssigneeIDs)
	}
	if p.CustomFields != nil {
		t.CustomFields = p.CustomFields
	}
}

// clone returns a deep enough copy for handing out of the cache.
func (t *Task) clone() Task {
	cp := *t
	cp.AssigneeIDs = append([]string(nil), t.AssigneeIDs...)
	if t.CustomFields != nil {
		cp.CustomFields = make(map[string]interface{}, len(t.CustomFields))
		for k, v := range t.CustomFields {
			cp.CustomFields[k] = v
		}
	}
	return cp
}

// uniqueIDs collapses duplicates while keeping first-seen order; assignee
// sets have ordered-unique semantics.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
