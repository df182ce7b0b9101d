package validate

import (
	"net/http"
	"net/url"
	"testing"
)

func TestMethod(t *testing.T) {
	if err := Method(http.MethodGet); err != nil {
		t.Errorf("GET should pass, got %+v", err)
	}

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodHead, ""} {
		err := Method(method)
		if err == nil {
			t.Errorf("method %q should fail", method)
			continue
		}
		if err.Status != http.StatusMethodNotAllowed {
			t.Errorf("method %q: expected status 405, got %d", method, err.Status)
		}
		if err.Message != "Method not allowed" {
			t.Errorf("method %q: unexpected message %q", method, err.Message)
		}
	}
}

func TestAuthValidToken(t *testing.T) {
	headers := http.Header{}
	headers.Set(TokenHeader, "test-token-123")

	if err := Auth(headers, "test-token-123"); err != nil {
		t.Errorf("matching token should pass, got %+v", err)
	}
}

func TestAuthConfiguredTokenMissing(t *testing.T) {
	headers := http.Header{}
	headers.Set(TokenHeader, "any-token")

	err := Auth(headers, "")
	if err == nil {
		t.Fatal("unset configured token should fail")
	}
	if err.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", err.Status)
	}
	if err.Message != "Server configuration error: API token not set" {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestAuthRejections(t *testing.T) {
	multiValued := http.Header{}
	multiValued.Add(TokenHeader, "correct-token")
	multiValued.Add(TokenHeader, "extra")

	wrong := http.Header{}
	wrong.Set(TokenHeader, "wrong-token")

	empty := http.Header{}
	empty.Set(TokenHeader, "")

	cased := http.Header{}
	cased.Set(TokenHeader, "Correct-Token")

	padded := http.Header{}
	padded.Set(TokenHeader, " correct-token ")

	tests := []struct {
		name    string
		headers http.Header
	}{
		{"missing header", http.Header{}},
		{"wrong token", wrong},
		{"empty token value", empty},
		{"case mismatch", cased},
		{"surrounding whitespace", padded},
		{"multi-valued header containing the correct token", multiValued},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Auth(tt.headers, "correct-token")
			if err == nil {
				t.Fatal("expected rejection")
			}
			if err.Status != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", err.Status)
			}
			if err.Message != "Unauthorized: Invalid or missing API token" {
				t.Errorf("unexpected message %q", err.Message)
			}
		})
	}
}

func TestParams(t *testing.T) {
	tests := []struct {
		name     string
		query    url.Values
		required []string
		wantMsg  string
	}{
		{
			name:     "all present",
			query:    url.Values{"lat": {"40.7"}, "lon": {"-74.0"}, "units": {"metric"}},
			required: []string{"lat", "lon"},
		},
		{
			name:     "nothing required",
			query:    url.Values{"optional": {"value"}},
			required: nil,
		},
		{
			name:     "single missing",
			query:    url.Values{"lon": {"-74.0"}},
			required: []string{"lat", "lon"},
			wantMsg:  "Missing required parameters: lat",
		},
		{
			name:     "all missing, declared order preserved",
			query:    url.Values{"units": {"metric"}},
			required: []string{"lat", "lon"},
			wantMsg:  "Missing required parameters: lat, lon",
		},
		{
			name:     "empty string counts as missing",
			query:    url.Values{"lat": {""}, "lon": {"-74.0"}},
			required: []string{"lat", "lon"},
			wantMsg:  "Missing required parameters: lat",
		},
		{
			name:     "repeated parameter with empty first value counts as present",
			query:    url.Values{"lat": {"", "40.7"}, "lon": {"-74.0"}},
			required: []string{"lat", "lon"},
		},
		{
			name:     "repeated parameter counts as present even when all values are empty",
			query:    url.Values{"lat": {"", ""}, "lon": {"-74.0"}},
			required: []string{"lat", "lon"},
		},
		{
			name:     "zero-length value slice counts as missing",
			query:    url.Values{"lat": {}, "lon": {"-74.0"}},
			required: []string{"lat", "lon"},
			wantMsg:  "Missing required parameters: lat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Params(tt.query, tt.required)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("expected pass, got %+v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected failure")
			}
			if err.Status != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", err.Status)
			}
			if err.Message != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, err.Message)
			}
		})
	}
}
