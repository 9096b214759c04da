package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/nittiva/trackboard/pkg/task"
)

// requestTimeout bounds every backend call; a hung backend resolves to a
// failure instead of blocking the caller forever.
const requestTimeout = 15 * time.Second

var ErrApiNotHealthy = errors.New("backend api is not healthy, got status code")

// APIError is a completed request the backend rejected. 4xx codes are
// validation failures; anything else is the backend misbehaving.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) IsValidation() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// Client talks to the task backend's REST API. It implements task.API.
type Client struct {
	apiURL string

	authToken   string
	workspaceID string
	httpClient  *http.Client
	mx          sync.Mutex
}

func NewClient(apiURL string) *Client {
	return &Client{
		apiURL:      apiURL,
		workspaceID: "1",
		httpClient:  &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) WithAuthToken(token string) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.authToken = token
}

func (c *Client) WithWorkspace(workspaceID string) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.workspaceID = workspaceID
}

// GetTasks fetches tasks, optionally scoped to one project. The backend may
// answer with a bare array or a paginated results envelope.
func (c *Client) GetTasks(projectID string) ([]task.Task, error) {
	url := fmt.Sprintf("%s/tasks/", c.apiURL)
	if projectID != "" {
		pid, err := parseServerID(projectID)
		if err != nil {
			return nil, fmt.Errorf("invalid project id %q: %w", projectID, err)
		}
		url = fmt.Sprintf("%s/tasks/?project=%d", c.apiURL, pid)
	}

	b, err := c.request("GET", url, nil)
	if err != nil {
		return nil, err
	}

	wireTasks, err := decodeTaskList(b)
	if err != nil {
		return nil, err
	}
	tasks := make([]task.Task, 0, len(wireTasks))
	for i := range wireTasks {
		tasks = append(tasks, normalizeTask(&wireTasks[i]))
	}
	return tasks, nil
}

func (c *Client) CreateTask(draft task.Task) (*task.Task, error) {
	body, err := createBody(draft)
	if err != nil {
		return nil, err
	}

	b, err := c.request("POST", fmt.Sprintf("%s/tasks/", c.apiURL), body)
	if err != nil {
		return nil, err
	}

	var wt wireTask
	if err := json.Unmarshal(b, &wt); err != nil {
		return nil, err
	}
	created := normalizeTask(&wt)
	return &created, nil
}

func (c *Client) UpdateTask(id string, patch task.Patch) (*task.Task, error) {
	tid, err := parseServerID(id)
	if err != nil {
		return nil, fmt.Errorf("task %q has no server id yet: %w", id, err)
	}

	b, err := c.request("PATCH", fmt.Sprintf("%s/tasks/%d/", c.apiURL, tid), patchBody(patch))
	if err != nil {
		return nil, err
	}

	var wt wireTask
	if err := json.Unmarshal(b, &wt); err != nil {
		return nil, err
	}
	updated := normalizeTask(&wt)
	return &updated, nil
}

func (c *Client) DeleteTask(id string) error {
	tid, err := parseServerID(id)
	if err != nil {
		return fmt.Errorf("task %q has no server id yet: %w", id, err)
	}
	_, err = c.request("DELETE", fmt.Sprintf("%s/tasks/%d/", c.apiURL, tid), nil)
	return err
}

// AssignUsers replaces the task's whole assignee set. Ids that never got a
// server id are dropped, matching what the dashboard sent.
func (c *Client) AssignUsers(taskID string, userIDs []string) error {
	tid, err := parseServerID(taskID)
	if err != nil {
		return fmt.Errorf("task %q has no server id yet: %w", taskID, err)
	}

	ids := make([]int64, 0, len(userIDs))
	for _, id := range userIDs {
		uid, err := parseServerID(id)
		if err != nil {
			continue
		}
		ids = append(ids, uid)
	}

	_, err = c.request("POST", fmt.Sprintf("%s/tasks/%d/assign_users/", c.apiURL, tid),
		map[string]interface{}{"user_ids": ids})
	return err
}

func (c *Client) GetUsers() ([]task.User, error) {
	b, err := c.request("GET", fmt.Sprintf("%s/users/", c.apiURL), nil)
	if err != nil {
		return nil, err
	}

	wireUsers, err := decodeUserList(b)
	if err != nil {
		return nil, err
	}
	users := make([]task.User, 0, len(wireUsers))
	for i := range wireUsers {
		users = append(users, normalizeUser(&wireUsers[i]))
	}
	return users, nil
}

func (c *Client) Ping() error {
	httpClient := &http.Client{Timeout: 3 * time.Second}

	resp, err := httpClient.Get(fmt.Sprintf("%s/status/", c.apiURL))
	if err != nil {
		return fmt.Errorf("error checking backend api, reason: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrApiNotHealthy, resp.StatusCode)
	}
	return nil
}

func (c *Client) request(method, url string, payload interface{}) ([]byte, error) {
	var buf *bytes.Buffer
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		buf = bytes.NewBuffer(b)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "trackboard")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.mx.Lock()
	req.Header.Set("workspace_id", c.workspaceID)
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	c.mx.Unlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, url, err)
	}
	defer resp.Body.Close()
	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	return b, nil
}

func parseServerID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}
