// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package validation

import (
	"strings"
	"testing"
)

func TestGetValidatorSingleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateUserID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		uid     string
		wantTag string
		wantMsg string
	}{
		{"simple", "u1", "", ""},
		{"uuid", "0b9e6a52-58c6-4b1e-9c07-3f2f1a1f0c11", "", ""},
		{"punctuation", "user:42@site", "", ""},
		{"max length", strings.Repeat("a", MaxIDLength), "", ""},
		{"empty", "", "required", "uid is required"},
		{"too long", strings.Repeat("a", MaxIDLength+1), "max", "uid must be at most 128 characters"},
		{"control character", "u\x001", "printascii", "uid must contain only printable ASCII characters"},
		{"non ascii", "usér", "printascii", "uid must contain only printable ASCII characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verr := ValidateUserID(tt.uid)
			if tt.wantTag == "" {
				if verr != nil {
					t.Fatalf("ValidateUserID(%q) = %v, want nil", tt.uid, verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("ValidateUserID(%q) = nil, want %s failure", tt.uid, tt.wantTag)
			}
			errs := verr.Errors()
			if len(errs) != 1 || errs[0].Tag() != tt.wantTag || errs[0].Field() != "uid" {
				t.Errorf("errors = %+v", errs)
			}
			if verr.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", verr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateProductID(t *testing.T) {
	t.Parallel()

	if verr := ValidateProductID("p1"); verr != nil {
		t.Errorf("ValidateProductID(p1) = %v", verr)
	}
	verr := ValidateProductID("")
	if verr == nil || verr.Errors()[0].Field() != "pid" {
		t.Errorf("ValidateProductID(\"\") = %v, want pid failure", verr)
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	apiErr := ValidateUserID("").ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %s", apiErr.Code)
	}
	if apiErr.Message != "uid is required" {
		t.Errorf("Message = %s", apiErr.Message)
	}
	if apiErr.Details["field"] != "uid" || apiErr.Details["tag"] != "required" {
		t.Errorf("Details = %v", apiErr.Details)
	}

	multi := (&RequestValidationError{errors: []ValidationError{
		{field: "a", tag: "required", message: "a is required"},
		{field: "b", tag: "max", message: "b must be at most 1"},
	}}).ToAPIError()
	if multi.Message != "a is required; b must be at most 1" {
		t.Errorf("Message = %s", multi.Message)
	}
	if fields, ok := multi.Details["fields"].([]map[string]interface{}); !ok || len(fields) != 2 {
		t.Errorf("Details = %v", multi.Details)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty Message = %s", empty.Message)
	}
}
