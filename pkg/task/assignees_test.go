package task

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleAssignee_RoundTrip(t *testing.T) {
	api := newFakeAPI()
	api.serverTasks = []Task{{ID: "1", ProjectID: "7", AssigneeIDs: []string{"10"}}}
	c, _, _ := newTestCache(api)
	require.NoError(t, c.Refresh("7"))

	require.NoError(t, c.ToggleAssignee("1", "20"))
	got, _ := c.Task("1")
	assert.Equal(t, []string{"10", "20"}, got.AssigneeIDs)

	// second identical toggle restores the original set
	require.NoError(t, c.ToggleAssignee("1", "20"))
	got, _ = c.Task("1")
	assert.Equal(t, []string{"10"}, got.AssigneeIDs)
}

func TestToggleAssignee_RemovesExisting(t *testing.T) {
	api := newFakeAPI()
	api.serverTasks = []Task{{ID: "1", ProjectID: "7", AssigneeIDs: []string{"10", "20"}}}
	c, _, _ := newTestCache(api)
	require.NoError(t, c.Refresh("7"))

	require.NoError(t, c.ToggleAssignee("1", "10"))
	got, _ := c.Task("1")
	assert.Equal(t, []string{"20"}, got.AssigneeIDs)
}

func TestToggleAssignee_UnknownTask(t *testing.T) {
	c, _, _ := newTestCache(newFakeAPI())
	assert.ErrorIs(t, c.ToggleAssignee("nope", "10"), ErrTaskNotFound)
}

func TestCommitAssignees_FullReplaceAndRefresh(t *testing.T) {
	api := newFakeAPI()
	api.serverTasks = []Task{{ID: "1", ProjectID: "7", AssigneeIDs: []string{"10"}}}
	c, _, _ := newTestCache(api)
	require.NoError(t, c.Refresh("7"))

	require.NoError(t, c.CommitAssignees("1", []string{"20", "30", "20"}))

	// duplicates collapse before the backend sees the set
	assert.Equal(t, []string{"20", "30"}, api.assigned["1"])

	// the refresh pulled the server-resolved record back in
	got, ok := c.Task("1")
	require.True(t, ok)
	assert.Equal(t, []string{"20", "30"}, got.AssigneeIDs)
}

func TestCommitAssignees_BackendFailure(t *testing.T) {
	api := newFakeAPI()
	api.serverTasks = []Task{{ID: "1", ProjectID: "7"}}
	c, _, _ := newTestCache(api)
	require.NoError(t, c.Refresh("7"))

	api.assignErr = errors.New("backend down")
	err := c.CommitAssignees("1", []string{"20"})
	assert.Error(t, err)

	// the local set keeps the optimistic value until the next refresh
	got, _ := c.Task("1")
	assert.Equal(t, []string{"20"}, got.AssigneeIDs)
}

func TestAssignableUsers_AdminHidesSelf(t *testing.T) {
	all := []User{
		{ID: "1", Name: "Admin", Role: "admin"},
		{ID: "2", Name: "Dev"},
		{ID: "3", Name: "Designer"},
	}

	admin := &User{ID: "1", Role: "admin"}
	pickable := AssignableUsers(all, admin)
	require.Len(t, pickable, 2)
	for _, u := range pickable {
		assert.NotEqual(t, "1", u.ID)
	}
}

func TestAssignableUsers_StaffFlagCountsAsAdmin(t *testing.T) {
	all := []User{{ID: "1"}, {ID: "2"}}

	staff := &User{ID: "1", Staff: true}
	assert.Len(t, AssignableUsers(all, staff), 1)

	super := &User{ID: "2", Superuser: true}
	assert.Len(t, AssignableUsers(all, super), 1)
}

func TestAssignableUsers_NonAdminSeesEveryone(t *testing.T) {
	all := []User{
		{ID: "1", Role: "admin"},
		{ID: "2"},
	}

	dev := &User{ID: "2"}
	assert.Equal(t, all, AssignableUsers(all, dev))

	// no current user resolved: full list
	assert.Equal(t, all, AssignableUsers(all, nil))
}
