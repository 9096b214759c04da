package task

// ToggleAssignee flips a user's membership in the task's assignee set, local
// state only. Toggling the same user twice restores the original set; nothing
// reaches the backend until CommitAssignees.
func (c *Cache) ToggleAssignee(taskID, userID string) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	r := c.findLocked(taskID)
	if r == nil {
		return ErrTaskNotFound
	}

	ids := r.task.AssigneeIDs
	removed := false
	next := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		if id == userID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, userID)
	}
	r.task.AssigneeIDs = next
	c.revision++
	r.revision = c.revision
	return nil
}

// CommitAssignees sends the full assignee set to the backend, replacing
// whatever it had, then refreshes the task's project so server-resolved user
// records become available locally.
func (c *Cache) CommitAssignees(taskID string, ids []string) error {
	c.mx.Lock()
	r := c.findLocked(taskID)
	if r == nil {
		c.mx.Unlock()
		return ErrTaskNotFound
	}
	ids = uniqueIDs(ids)
	r.task.AssigneeIDs = ids
	c.revision++
	r.revision = c.revision
	projectID := r.task.ProjectID
	c.mx.Unlock()

	if err := c.api.AssignUsers(taskID, ids); err != nil {
		return err
	}
	return c.Refresh(projectID)
}

// AssignableUsers filters the candidate list for the assignee picker. An
// administrator does not appear in their own picker; everyone else sees the
// full list, themselves included. This is a product rule, not a technical
// constraint.
func AssignableUsers(all []User, current *User) []User {
	if current == nil || !current.IsAdmin() {
		return all
	}
	pickable := make([]User, 0, len(all))
	for _, u := range all {
		if u.ID == current.ID {
			continue
		}
		pickable = append(pickable, u)
	}
	return pickable
}
