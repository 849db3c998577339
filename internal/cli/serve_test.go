package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/canopy/pkg/pipeline"
)

func TestHandleLayout(t *testing.T) {
	c := New(io.Discard, LogInfo)
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	handler := c.handleLayout(runner)

	body := `{"graph": {"nodes": [{"id": "a"}, {"id": "b"}], "edges": [{"from": "a", "to": "b"}]}}`
	req := httptest.NewRequest("POST", "/v1/layouts", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp layoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" {
		t.Error("response should carry a layout id")
	}
	if len(resp.Layout.Placements) != 2 {
		t.Errorf("placements = %d, want 2", len(resp.Layout.Placements))
	}
	if resp.CacheHit {
		t.Error("null cache should never report a hit")
	}
}

func TestHandleLayoutErrors(t *testing.T) {
	c := New(io.Discard, LogInfo)
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	handler := c.handleLayout(runner)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "InvalidJSON",
			body:       `{broken`,
			wantStatus: 400,
			wantCode:   "INVALID_FORMAT",
		},
		{
			name:       "MissingGraph",
			body:       `{"options": {}}`,
			wantStatus: 400,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "UnknownAlgorithm",
			body:       `{"graph": {"nodes": [{"id": "a"}]}, "options": {"algorithm": "radial"}}`,
			wantStatus: 400,
			wantCode:   "INVALID_ALGORITHM",
		},
		{
			name:       "DuplicateNodeID",
			body:       `{"graph": {"nodes": [{"id": "a"}, {"id": "a"}]}}`,
			wantStatus: 400,
			wantCode:   "INVALID_INPUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/v1/layouts", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}
