// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package conformance

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit(t *testing.T) {
	program := Format([]byte{0x95, 0, 0, 0, 0, 0, 0, 0}, nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/run", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		req := new(RunRequest)
		if err := json.Unmarshal(body, req); err != nil || req.Program == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(&RunResponse{Status: StatusError, Message: "bad request"})
			return
		}
		json.NewEncoder(w).Encode(&RunResponse{
			Status:       StatusSuccess,
			Message:      "Request received and processed",
			ReceivedData: req,
			Instructions: 1,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/run/")
	reply, err := client.Submit(context.Background(), program)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, reply.StatusCode)
	resp, err := reply.Decode()
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, string(program), resp.ReceivedData.Program)
	assert.Equal(t, 1, resp.Instructions)

	reply, err = client.Submit(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, reply.StatusCode)
	resp, err = reply.Decode()
	require.NoError(t, err)
	assert.Equal(t, StatusError, resp.Status)
}

func TestSubmitTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	_, err := NewClient(url).Submit(context.Background(), []byte("-- raw\n"))
	assert.Error(t, err)
}

func TestReplyDecodeError(t *testing.T) {
	reply := &Reply{StatusCode: http.StatusOK, Body: []byte("<html>")}
	_, err := reply.Decode()
	assert.Error(t, err)
}
