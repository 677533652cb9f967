package tasksdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// Session is an authenticated view of the API, bound to one access
// token. Sessions are created by SDKClient.PasswordGrant or
// SDKClient.NewSessionFromToken.
type Session struct {
	client      *SDKClient
	accessToken string
}

// AccessToken returns the raw bearer token backing this session.
func (s *Session) AccessToken() string {
	return s.accessToken
}

// UserInfo returns the profile of the authenticated user.
func (s *Session) UserInfo(ctx context.Context) (*UserInfoResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/userinfo", nil)
	if err != nil {
		return nil, err
	}

	var info UserInfoResponse
	if err := decodeJSON(resp, &info, http.StatusOK); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListTodos returns every todo owned by the authenticated user.
func (s *Session) ListTodos(ctx context.Context) ([]TodoResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/todos", nil)
	if err != nil {
		return nil, err
	}

	var todos []TodoResponse
	if err := decodeJSON(resp, &todos, http.StatusOK); err != nil {
		return nil, err
	}
	return todos, nil
}

// CreateTodo creates a todo owned by the authenticated user.
func (s *Session) CreateTodo(ctx context.Context, req TodoRequest) (*TodoResponse, error) {
	return s.writeTodo(ctx, http.MethodPost, "/v1/todos", req, http.StatusCreated)
}

// GetTodo fetches one todo by id. Todos owned by other users return a
// not found error.
func (s *Session) GetTodo(ctx context.Context, id int64) (*TodoResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, todoPath(id), nil)
	if err != nil {
		return nil, err
	}

	var todo TodoResponse
	if err := decodeJSON(resp, &todo, http.StatusOK); err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdateTodo replaces the client-editable fields of a todo.
func (s *Session) UpdateTodo(ctx context.Context, id int64, req TodoRequest) (*TodoResponse, error) {
	return s.writeTodo(ctx, http.MethodPut, todoPath(id), req, http.StatusOK)
}

// DeleteTodo removes a todo. The server responds 204 on success.
func (s *Session) DeleteTodo(ctx context.Context, id int64) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, todoPath(id), nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

func (s *Session) writeTodo(
	ctx context.Context,
	method, path string,
	req TodoRequest,
	expectedStatus int,
) (*TodoResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, method, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var todo TodoResponse
	if err := decodeJSON(resp, &todo, expectedStatus); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (s *Session) doAuthRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func todoPath(id int64) string {
	return "/v1/todos/" + strconv.FormatInt(id, 10)
}
