package field

import (
	"errors"
	"fmt"
	"sync"
)

// ActionsColumnID is the fixed trailing column; custom columns always insert
// immediately before it.
const ActionsColumnID = "actions"

var ErrFieldExists = errors.New("field id already in schema")

// Column is a display column of the task table. Base columns are fixed;
// custom columns come and go with their schema entries.
type Column struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Width     int    `json:"width"`
	Sortable  bool   `json:"sortable"`
	IsCustom  bool   `json:"isCustom,omitempty"`
	FieldType string `json:"fieldType,omitempty"`
}

// ValueStripper removes a custom field key from every task it holds.
// Schema and task data evolve together; removing a schema entry must never
// leave orphaned values behind in the in-memory set.
type ValueStripper interface {
	StripCustomField(fieldID string)
}

// Registry owns the dynamic field schema and the derived column layout.
type Registry struct {
	fields   []Field
	columns  []Column
	stripper ValueStripper

	mx sync.RWMutex
}

func NewRegistry(stripper ValueStripper, seed []Field) *Registry {
	r := &Registry{
		stripper: stripper,
		columns: []Column{
			{ID: "task", Label: "Task", Width: 250, Sortable: true},
			{ID: "assignee", Label: "Assignee", Width: 120, Sortable: true},
			{ID: "dueDate", Label: "Due date", Width: 110, Sortable: true},
			{ID: "priority", Label: "Priority", Width: 100, Sortable: true},
			{ID: "status", Label: "Status", Width: 110, Sortable: true},
			{ID: "progress", Label: "Progress", Width: 120, Sortable: true},
			{ID: ActionsColumnID, Label: "", Width: 50, Sortable: false},
		},
	}
	for _, f := range seed {
		if err := r.AddField(f); err != nil {
			// seed entries with duplicate ids are a configuration mistake
			panic(fmt.Sprintf("field registry seed: %v", err))
		}
	}
	return r
}

// AddField appends a schema entry and inserts its column before the trailing
// actions column.
func (r *Registry) AddField(f Field) error {
	r.mx.Lock()
	defer r.mx.Unlock()

	for _, existing := range r.fields {
		if existing.ID == f.ID {
			return fmt.Errorf("%w: %s", ErrFieldExists, f.ID)
		}
	}
	r.fields = append(r.fields, f)

	width := f.Width
	if width == 0 {
		width = 150
	}
	col := Column{
		ID:        f.ID,
		Label:     f.Name,
		Width:     width,
		Sortable:  true,
		IsCustom:  true,
		FieldType: f.Type,
	}
	for i, c := range r.columns {
		if c.ID == ActionsColumnID {
			r.columns = append(r.columns[:i], append([]Column{col}, r.columns[i:]...)...)
			return nil
		}
	}
	r.columns = append(r.columns, col)
	return nil
}

// RemoveField deletes the schema entry and its column, and strips the field's
// values from every task currently held in memory. Unknown ids are a no-op.
func (r *Registry) RemoveField(id string) {
	r.mx.Lock()
	found := false
	fields := r.fields[:0]
	for _, f := range r.fields {
		if f.ID == id {
			found = true
			continue
		}
		fields = append(fields, f)
	}
	r.fields = fields

	columns := r.columns[:0]
	for _, c := range r.columns {
		if c.ID == id {
			continue
		}
		columns = append(columns, c)
	}
	r.columns = columns
	stripper := r.stripper
	r.mx.Unlock()

	if found && stripper != nil {
		stripper.StripCustomField(id)
	}
}

// Lookup returns the schema entry for a field id.
func (r *Registry) Lookup(id string) (Field, bool) {
	r.mx.RLock()
	defer r.mx.RUnlock()
	for _, f := range r.fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

func (r *Registry) Fields() []Field {
	r.mx.RLock()
	defer r.mx.RUnlock()
	fields := make([]Field, len(r.fields))
	copy(fields, r.fields)
	return fields
}

func (r *Registry) Columns() []Column {
	r.mx.RLock()
	defer r.mx.RUnlock()
	columns := make([]Column, len(r.columns))
	copy(columns, r.columns)
	return columns
}

// RenderValue renders a task's stored value for a field id. A value whose
// field has been removed from the schema renders as absent, never an error.
func (r *Registry) RenderValue(fieldID string, raw interface{}) string {
	f, ok := r.Lookup(fieldID)
	if !ok {
		return ""
	}
	v, err := ParseValue(f.Type, raw)
	if err != nil {
		// value does not fit the declared domain; show it raw rather than hide it
		return fmt.Sprintf("%v", raw)
	}
	return v.Render()
}
