package client

import (
	"encoding/json"
	"strconv"

	"github.com/nittiva/trackboard/pkg/task"
)

// Wire shapes of the backend's task and user resources. Field names differ
// from the local projection: the mapping in normalizeTask / createBody /
// patchBody is total in both directions, with defaults for absent optionals.
type (
	wireUser struct {
		ID           int64  `json:"id"`
		Email        string `json:"email"`
		Name         string `json:"name,omitempty"`
		Role         string `json:"role,omitempty"`
		IsStaff      bool   `json:"is_staff,omitempty"`
		IsSuperuser  bool   `json:"is_superuser,omitempty"`
		ProfileImage string `json:"profile_image,omitempty"`
	}

	wireTask struct {
		ID                 int64                  `json:"id"`
		Project            int64                  `json:"project"`
		Title              string                 `json:"title"`
		Description        *string                `json:"description"`
		Status             string                 `json:"status"`
		Priority           string                 `json:"priority"`
		Progress           *int                   `json:"progress"`
		DueDate            *string                `json:"due_date"`
		TimeTrackedSeconds int64                  `json:"time_tracked_seconds"`
		CustomFields       map[string]interface{} `json:"custom_fields"`
		Assignees          []wireUser             `json:"assignees"`
	}

	createRequest struct {
		Project      int64                  `json:"project"`
		Title        string                 `json:"title"`
		Description  string                 `json:"description"`
		Status       string                 `json:"status"`
		Priority     string                 `json:"priority"`
		Progress     int                    `json:"progress"`
		DueDate      *string                `json:"due_date"`
		CustomFields map[string]interface{} `json:"custom_fields"`
		AssigneeIDs  []int64                `json:"assignee_ids,omitempty"`
	}
)

func normalizeTask(wt *wireTask) task.Task {
	t := task.Task{
		ID:          strconv.FormatInt(wt.ID, 10),
		ProjectID:   strconv.FormatInt(wt.Project, 10),
		Name:        wt.Title,
		Status:      task.Status(wt.Status),
		Priority:    task.Priority(wt.Priority),
		TimeTracked: wt.TimeTrackedSeconds,
	}
	if wt.Description != nil {
		t.Description = *wt.Description
	}
	if wt.DueDate != nil {
		t.DueDate = *wt.DueDate
	}
	if wt.Progress != nil {
		t.Progress = *wt.Progress
	}
	if t.Status == "" {
		t.Status = task.StatusToDo
	}
	if t.Priority == "" {
		t.Priority = task.PriorityMedium
	}
	t.CustomFields = wt.CustomFields
	if t.CustomFields == nil {
		t.CustomFields = map[string]interface{}{}
	}
	t.AssigneeIDs = make([]string, 0, len(wt.Assignees))
	for _, u := range wt.Assignees {
		t.AssigneeIDs = append(t.AssigneeIDs, strconv.FormatInt(u.ID, 10))
	}
	return t
}

func normalizeUser(wu *wireUser) task.User {
	return task.User{
		ID:        strconv.FormatInt(wu.ID, 10),
		Email:     wu.Email,
		Name:      wu.Name,
		Role:      wu.Role,
		Staff:     wu.IsStaff,
		Superuser: wu.IsSuperuser,
		PhotoURL:  wu.ProfileImage,
	}
}

func createBody(draft task.Task) (*createRequest, error) {
	pid, err := parseServerID(draft.ProjectID)
	if err != nil {
		return nil, err
	}

	body := &createRequest{
		Project:      pid,
		Title:        draft.Name,
		Description:  draft.Description,
		Status:       string(draft.Status),
		Priority:     string(draft.Priority),
		Progress:     draft.Progress,
		CustomFields: draft.CustomFields,
	}
	if body.Status == "" {
		body.Status = string(task.StatusToDo)
	}
	if body.Priority == "" {
		body.Priority = string(task.PriorityMedium)
	}
	if body.CustomFields == nil {
		body.CustomFields = map[string]interface{}{}
	}
	if draft.DueDate != "" {
		due := draft.DueDate
		body.DueDate = &due
	}
	for _, id := range draft.AssigneeIDs {
		uid, err := parseServerID(id)
		if err != nil {
			continue
		}
		body.AssigneeIDs = append(body.AssigneeIDs, uid)
	}
	return body, nil
}

// patchBody keeps only the fields the patch actually sets, so a PATCH never
// clobbers server fields the caller did not touch.
func patchBody(patch task.Patch) map[string]interface{} {
	body := map[string]interface{}{}
	if patch.ProjectID != nil {
		if pid, err := parseServerID(*patch.ProjectID); err == nil {
			body["project"] = pid
		}
	}
	if patch.Name != nil {
		body["title"] = *patch.Name
	}
	if patch.Description != nil {
		body["description"] = *patch.Description
	}
	if patch.Status != nil {
		body["status"] = string(*patch.Status)
	}
	if patch.Priority != nil {
		body["priority"] = string(*patch.Priority)
	}
	if patch.Progress != nil {
		body["progress"] = *patch.Progress
	}
	if patch.DueDate != nil {
		if *patch.DueDate == "" {
			body["due_date"] = nil
		} else {
			body["due_date"] = *patch.DueDate
		}
	}
	if patch.CustomFields != nil {
		body["custom_fields"] = patch.CustomFields
	}
	if patch.AssigneeIDs != nil {
		ids := make([]int64, 0, len(*patch.AssigneeIDs))
		for _, id := range *patch.AssigneeIDs {
			if uid, err := parseServerID(id); err == nil {
				ids = append(ids, uid)
			}
		}
		body["assignee_ids"] = ids
	}
	return body
}

func decodeTaskList(b []byte) ([]wireTask, error) {
	var list []wireTask
	if err := json.Unmarshal(b, &list); err == nil {
		return list, nil
	}
	var envelope struct {
		Results []wireTask `json:"results"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return nil, err
	}
	return envelope.Results, nil
}

func decodeUserList(b []byte) ([]wireUser, error) {
	var list []wireUser
	if err := json.Unmarshal(b, &list); err == nil {
		return list, nil
	}
	var envelope struct {
		Results []wireUser `json:"results"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return nil, err
	}
	return envelope.Results, nil
}
