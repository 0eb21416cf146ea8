package dto

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestErrorResponse_Error(t *testing.T) {
	cases := []struct {
		resp ErrorResponse
		want string
	}{
		{ErrorResponse{Message: "oops"}, "oops"},
		{ErrorResponse{Message: "oops", ErrorDetails: "bad"}, "oops: bad"},
	}
	for _, c := range cases {
		if got := c.resp.Error(); got != c.want {
			t.Fatalf("Error()=%q, want %q", got, c.want)
		}
	}
}

func TestNewErrorResponse(t *testing.T) {
	e := NewErrorResponse("upstream unavailable", errors.New("dial tcp: timeout"))
	if e.ErrorDetails != "dial tcp: timeout" || e.Message != "upstream unavailable" {
		t.Fatalf("unexpected %+v", e)
	}
	if e.Timestamp.IsZero() || time.Since(e.Timestamp) > time.Second {
		t.Fatalf("timestamp not set")
	}
	if e.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp not in UTC: %v", e.Timestamp.Location())
	}
}

func TestErrorResponse_JSONShape(t *testing.T) {
	plain, err := json.Marshal(NewErrorResponse("Invalid token.", nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(plain, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := got["error"]; ok {
		t.Fatalf("empty error detail should be omitted: %s", plain)
	}
	if _, ok := got["fields"]; ok {
		t.Fatalf("empty fields should be omitted: %s", plain)
	}

	withFields, err := json.Marshal(NewValidationErrorResponse(map[string][]string{
		"password": {"Password fields didn't match."},
	}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body struct {
		Message string              `json:"message"`
		Fields  map[string][]string `json:"fields"`
	}
	if err := json.Unmarshal(withFields, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Message != "invalid request" {
		t.Fatalf("message=%q", body.Message)
	}
	if got := body.Fields["password"]; len(got) != 1 || got[0] != "Password fields didn't match." {
		t.Fatalf("fields=%v", body.Fields)
	}
}
