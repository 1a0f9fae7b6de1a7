package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
)

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"bad request", e.ErrStatusBadRequest, http.StatusBadRequest},
		{"missing fields", e.ErrMissingFields, http.StatusBadRequest},
		{"invalid page", e.ErrInvalidPage, http.StatusBadRequest},
		{"invalid quantity", e.ErrInvalidQuantity, http.StatusBadRequest},
		{"client not found", e.ErrClientNotFound, http.StatusNotFound},
		{"item not found", e.ErrItemNotFound, http.StatusNotFound},
		{"purchase not found", e.ErrPurchaseNotFound, http.StatusNotFound},
		{"company taken", e.ErrCompanyTaken, http.StatusConflict},
		{"phone taken", e.ErrPhoneNumberTaken, http.StatusConflict},
		{"item name taken", e.ErrItemNameTaken, http.StatusConflict},
		{"client has purchases", e.ErrClientHasPurchases, http.StatusConflict},
		{"unknown error", e.ErrInternalServerError, http.StatusInternalServerError},
		{"wrapped sentinel", e.Wrap("ClientUseCase.Create", e.ErrCompanyTaken), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := ToHTTPResponse(tt.err)
			if code != tt.wantCode {
				t.Errorf("ToHTTPResponse(%v) code = %d, want %d", tt.err, code, tt.wantCode)
			}
			if msg == "" {
				t.Errorf("ToHTTPResponse(%v) returned empty message", tt.err)
			}
		})
	}
}

func TestToHTTPResponseNamesConflictValue(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		value string
	}{
		{"item name", e.Wrap("ItemUseCase.Create", e.Conflict("Dog food 10kg", e.ErrItemNameTaken)), "Dog food 10kg"},
		{"company", e.Wrap("ClientUseCase.Create", e.Conflict("Acme", e.ErrCompanyTaken)), "Acme"},
		{"phone number", e.Conflict("600111222", e.ErrPhoneNumberTaken), "600111222"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := ToHTTPResponse(tt.err)
			if code != http.StatusConflict {
				t.Errorf("ToHTTPResponse(%v) code = %d, want %d", tt.err, code, http.StatusConflict)
			}
			if !strings.Contains(msg, tt.value) {
				t.Errorf("ToHTTPResponse(%v) message %q does not name %q", tt.err, msg, tt.value)
			}
			if strings.Contains(msg, "UseCase") {
				t.Errorf("ToHTTPResponse(%v) message %q leaks internal wrapping", tt.err, msg)
			}
		})
	}
}

func TestParsePageReq(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
		wantErr  bool
	}{
		{"defaults", "", 1, 20, false},
		{"explicit", "page=3&size=5", 3, 5, false},
		{"page only", "page=2", 2, 20, false},
		{"non-numeric page", "page=abc", 0, 0, true},
		{"non-numeric size", "size=xyz", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/clients?"+tt.query, nil)

			page, err := parsePageReq(r)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parsePageReq(%q) expected error, got none", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePageReq(%q) unexpected error: %v", tt.query, err)
			}
			if page.Page != tt.wantPage || page.Size != tt.wantSize {
				t.Errorf("parsePageReq(%q) = {%d %d}, want {%d %d}",
					tt.query, page.Page, page.Size, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := parseDate("15/03/2024")
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	if parsed.Day() != 15 || parsed.Month() != 3 || parsed.Year() != 2024 {
		t.Errorf("parseDate = %v, want 15/03/2024", parsed)
	}

	if _, err := parseDate("2024-03-15"); err == nil {
		t.Error("parseDate accepted ISO format, want error")
	}
}
