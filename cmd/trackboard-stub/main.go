// This package is only for local development. It imitates the project
// dashboard backend so you can run trackboard without the real server.
// If you don't know what this is all about, just ignore this package.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
)

type stubTask struct {
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
	Assignees          []stubUser             `json:"assignees"`
}

type stubUser struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`
	IsStaff      bool   `json:"is_staff,omitempty"`
	IsSuperuser  bool   `json:"is_superuser,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
}

type stubServer struct {
	mx     sync.Mutex
	tasks  map[int64]*stubTask
	users  []stubUser
	nextID int64
}

func newStubServer() *stubServer {
	desc := "Fixture task, edit freely"
	due := "2026-09-15"
	progress := 40

	users := []stubUser{
		{ID: 1, Email: "admin@example.com", Name: "Site Admin", Role: "admin", IsStaff: true},
		{ID: 2, Email: "mari@example.com", Name: "Mari Tamm"},
		{ID: 3, Email: "jaan@example.com", Name: "Jaan Kask"},
	}

	s := &stubServer{
		tasks:  map[int64]*stubTask{},
		users:  users,
		nextID: 100,
	}
	s.tasks[1] = &stubTask{
		ID: 1, Project: 1, Title: "Draft landing page",
		Description: &desc, Status: "in-progress", Priority: "high",
		Progress: &progress, DueDate: &due,
		CustomFields: map[string]interface{}{"status-field": "Active"},
		Assignees:    []stubUser{users[1]},
	}
	s.tasks[2] = &stubTask{
		ID: 2, Project: 1, Title: "Set up CI",
		Status: "to-do", Priority: "medium",
		CustomFields: map[string]interface{}{},
		Assignees:    []stubUser{},
	}
	s.tasks[3] = &stubTask{
		ID: 3, Project: 2, Title: "Quarterly report",
		Status: "completed", Priority: "low",
		CustomFields: map[string]interface{}{},
		Assignees:    []stubUser{users[1], users[2]},
	}
	return s
}

func (s *stubServer) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *stubServer) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mx.Lock()
	defer s.mx.Unlock()
	writeJSON(w, http.StatusOK, s.users)
}

func (s *stubServer) listTasks(w http.ResponseWriter, r *http.Request) {
	s.mx.Lock()
	defer s.mx.Unlock()

	project := r.URL.Query().Get("project")
	out := []stubTask{}
	for _, t := range s.tasks {
		if project != "" && strconv.FormatInt(t.Project, 10) != project {
			continue
		}
		out = append(out, *t)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *stubServer) createTask(w http.ResponseWriter, r *http.Request) {
	var t stubTask
	if !readJSON(w, r, &t) {
		return
	}
	if t.Title == "" || t.Project == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "title and project are required"})
		return
	}
	if t.CustomFields == nil {
		t.CustomFields = map[string]interface{}{}
	}
	if t.Assignees == nil {
		t.Assignees = []stubUser{}
	}

	s.mx.Lock()
	defer s.mx.Unlock()
	s.nextID++
	t.ID = s.nextID
	s.tasks[t.ID] = &t
	writeJSON(w, http.StatusCreated, t)
}

func (s *stubServer) patchTask(w http.ResponseWriter, r *http.Request) {
	var patch map[string]interface{}
	if !readJSON(w, r, &patch) {
		return
	}

	s.mx.Lock()
	defer s.mx.Unlock()
	t, ok := s.tasks[taskID(r)]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
		return
	}

	// round-trip the patch through json so partial updates land on the
	// same struct fields the full representation uses
	b, err := json.Marshal(patch)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	if err := json.Unmarshal(b, t); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	if ids, ok := patch["assignee_ids"]; ok {
		t.Assignees = s.resolveUsers(ids)
	}
	writeJSON(w, http.StatusOK, *t)
}

func (s *stubServer) deleteTask(w http.ResponseWriter, r *http.Request) {
	s.mx.Lock()
	defer s.mx.Unlock()
	id := taskID(r)
	if _, ok := s.tasks[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
		return
	}
	delete(s.tasks, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *stubServer) assignUsers(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserIDs []int64 `json:"user_ids"`
	}
	if !readJSON(w, r, &body) {
		return
	}

	s.mx.Lock()
	defer s.mx.Unlock()
	t, ok := s.tasks[taskID(r)]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
		return
	}
	t.Assignees = []stubUser{}
	for _, id := range body.UserIDs {
		for _, u := range s.users {
			if u.ID == id {
				t.Assignees = append(t.Assignees, u)
			}
		}
	}
	writeJSON(w, http.StatusOK, *t)
}

func (s *stubServer) resolveUsers(raw interface{}) []stubUser {
	ids, ok := raw.([]interface{})
	if !ok {
		return []stubUser{}
	}
	out := []stubUser{}
	for _, v := range ids {
		id, ok := v.(float64)
		if !ok {
			continue
		}
		for _, u := range s.users {
			if u.ID == int64(id) {
				out = append(out, u)
			}
		}
	}
	return out
}

func taskID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()
	b, err := ioutil.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return false
	}
	log.Println(r.Method, r.RequestURI, string(b))
	if err := json.Unmarshal(b, dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("encode response:", err)
	}
}

func main() {
	port := flag.Int("port", 8000, "port to bind the stub backend to")
	flag.Parse()

	s := newStubServer()

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status/", s.status).Methods(http.MethodGet)
	api.HandleFunc("/users/", s.listUsers).Methods(http.MethodGet)
	api.HandleFunc("/tasks/", s.listTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks/", s.createTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id:[0-9]+}/", s.patchTask).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{id:[0-9]+}/", s.deleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{id:[0-9]+}/assign_users/", s.assignUsers).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", *port)
	log.Println("stub backend listening on", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}
