package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"task-server/entities"
)

type apiClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// view is one of the task listings reachable from the browser.
type view struct {
	key   string
	label string
	path  string
}

var views = []view{
	{key: "a", label: "All tasks", path: "/api/tasks"},
	{key: "t", label: "Due today", path: "/api/tasks/filter?filter=today"},
	{key: "w", label: "Due this week", path: "/api/tasks/filter?filter=thisWeek"},
	{key: "m", label: "Due this month", path: "/api/tasks/filter?filter=thisMonth"},
}

func viewForKey(key string) (view, bool) {
	for _, v := range views {
		if v.key == key {
			return v, true
		}
	}
	return view{}, false
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *apiClient) do(method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.baseURL+path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cannot reach %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e errorBody
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return fmt.Errorf("%s", e.Error)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// login stores the session token on success.
func (c *apiClient) login(email, password string) error {
	var res struct {
		Token string `json:"token"`
	}
	err := c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return err
	}
	c.token = res.Token
	return nil
}

func (c *apiClient) tasks(v view) ([]entities.Task, error) {
	var tasks []entities.Task
	if err := c.do(http.MethodGet, v.path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
