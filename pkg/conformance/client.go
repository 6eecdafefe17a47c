// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package conformance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RunRequest is the body of a program submission to ebpf-manager.
type RunRequest struct {
	Program string `json:"program"`
}

type RunResponse struct {
	Status       string      `json:"status"`
	Message      string      `json:"message"`
	ID           string      `json:"id,omitempty"`
	ReceivedData *RunRequest `json:"received_data,omitempty"`
	Instructions int         `json:"instructions,omitempty"`
	WideLoads    int         `json:"wide_loads,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Client submits programs to a manager endpoint.
type Client struct {
	url  string
	ctor requestCtor
	doer requestDoer
}

type (
	requestCtor func(ctx context.Context, method, url string, body io.Reader) (*http.Request, error)
	requestDoer func(req *http.Request) (*http.Response, error)
)

// NewClient creates a client posting to runURL (e.g. http://localhost:5000/run).
func NewClient(runURL string) *Client {
	return &Client{
		url:  strings.TrimSuffix(runURL, "/"),
		ctor: http.NewRequestWithContext,
		doer: http.DefaultClient.Do,
	}
}

// Reply is the raw outcome of a submission.
type Reply struct {
	StatusCode int
	Body       []byte
}

// Submit posts the program text. Non-2xx replies are not errors, they are returned
// to the caller as is; only transport failures are.
func (c *Client) Submit(ctx context.Context, program []byte) (*Reply, error) {
	body, err := json.Marshal(&RunRequest{Program: string(program)})
	if err != nil {
		return nil, err
	}
	req, err := c.ctor(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("http.NewRequest: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.doer(req)
	if err != nil {
		return nil, fmt.Errorf("http.Post(%v): %w", c.url, err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read reply from %v: %w", c.url, err)
	}
	return &Reply{
		StatusCode: res.StatusCode,
		Body:       data,
	}, nil
}

// Decode parses the reply body as a manager response.
func (reply *Reply) Decode() (*RunResponse, error) {
	resp := new(RunResponse)
	if err := json.Unmarshal(reply.Body, resp); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w\n%.1024s", err, reply.Body)
	}
	return resp, nil
}
