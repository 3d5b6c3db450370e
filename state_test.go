package odnoklassniki

import (
	"encoding/base64"
	"errors"
	"net/url"
	"testing"
)

// --- GenerateState ---

func TestGenerateState_Returns43CharBase64URL(t *testing.T) {
	state, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() error = %v", err)
	}
	// 32 bytes → base64url no padding → 43 characters
	if len(state) != 43 {
		t.Errorf("GenerateState() len = %d; want 43", len(state))
	}
	decoded, err := base64.RawURLEncoding.DecodeString(state)
	if err != nil {
		t.Fatalf("GenerateState() produced invalid base64url: %v", err)
	}
	if len(decoded) != 32 {
		t.Errorf("decoded length = %d; want 32", len(decoded))
	}
}

func TestGenerateState_ProducesUniqueValues(t *testing.T) {
	s1, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() first call error = %v", err)
	}
	s2, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() second call error = %v", err)
	}
	if s1 == s2 {
		t.Error("GenerateState() produced identical values on two calls")
	}
}

// --- ValidateState ---

func TestValidateState_MatchingStates(t *testing.T) {
	state, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() error = %v", err)
	}
	if err := ValidateState(state, state); err != nil {
		t.Errorf("ValidateState() with matching states returned error: %v", err)
	}
}

func TestValidateState_Failures(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		wantMsg  string
	}{
		{"mismatch", "abc123", "xyz789", "state mismatch"},
		{"different length", "short", "a-much-longer-state-value", "state mismatch"},
		{"empty expected", "", "some-state", "state: expected and actual must not be empty"},
		{"empty actual", "some-state", "", "state: expected and actual must not be empty"},
		{"both empty", "", "", "state: expected and actual must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateState(tt.expected, tt.actual)
			if err == nil {
				t.Fatal("ValidateState() returned nil")
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error is not *APIError: %T", err)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q; want %q", apiErr.Message, tt.wantMsg)
			}
			if !errors.Is(err, ErrProtocol) {
				t.Error("error should match ErrProtocol sentinel")
			}
		})
	}
}

func TestState_RoundTripThroughLoginURL(t *testing.T) {
	state, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() error = %v", err)
	}
	c := New("C1", "APP", "SEC", nil).SetRedirectURI("http://cb")
	u, err := url.Parse(c.LoginURL(WithState(state)))
	if err != nil {
		t.Fatalf("invalid URL: %v", err)
	}
	echoed := u.Query().Get("state")
	if echoed != state {
		t.Errorf("state in login URL = %q; want %q", echoed, state)
	}
	if err := ValidateState(state, echoed); err != nil {
		t.Errorf("ValidateState() error = %v", err)
	}
	if err := ValidateState(state, echoed+"x"); !errors.Is(err, ErrProtocol) {
		t.Errorf("ValidateState() error = %v; want ErrProtocol", err)
	}
}
