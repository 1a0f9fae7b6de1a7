package usecase

import (
	"errors"
	"testing"

	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
)

func TestPageReqValidate(t *testing.T) {
	tests := []struct {
		name    string
		page    PageReq
		wantErr error
	}{
		{"valid", NewPageReq(1, 20), nil},
		{"zero page", NewPageReq(0, 20), e.ErrInvalidPage},
		{"negative page", NewPageReq(-3, 20), e.ErrInvalidPage},
		{"zero size", NewPageReq(1, 0), e.ErrInvalidPageSize},
		{"negative size", NewPageReq(2, -1), e.ErrInvalidPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPageReqOffset(t *testing.T) {
	tests := []struct {
		page PageReq
		want int
	}{
		{NewPageReq(1, 20), 0},
		{NewPageReq(2, 20), 20},
		{NewPageReq(3, 7), 14},
	}

	for _, tt := range tests {
		if got := tt.page.Offset(); got != tt.want {
			t.Errorf("Offset(%d, %d) = %d, want %d", tt.page.Page, tt.page.Size, got, tt.want)
		}
	}
}

func TestPageInfoTotalPages(t *testing.T) {
	// Количество страниц считается по всей коллекции, а не по размеру
	// текущей страницы: 5 записей при размере 2 дают 3 страницы.
	tests := []struct {
		totalItems int
		size       int
		want       int
	}{
		{5, 2, 3},
		{6, 3, 2},
		{7, 3, 3},
		{1, 10, 1},
		{0, 3, 0},
		{10, 1, 10},
	}

	for _, tt := range tests {
		info := NewPageInfo(NewPageReq(1, tt.size), tt.totalItems)
		if info.TotalPages != tt.want {
			t.Errorf("TotalPages(%d items, size %d) = %d, want %d", tt.totalItems, tt.size, info.TotalPages, tt.want)
		}
		if info.TotalItems != tt.totalItems {
			t.Errorf("TotalItems = %d, want %d", info.TotalItems, tt.totalItems)
		}
	}
}

func TestCriteriaBuilders(t *testing.T) {
	name := "ann"
	quantity := 3

	var criteria Criteria
	criteria = Text(criteria, "name", &name)
	criteria = Text(criteria, "surname", nil)
	criteria = Eq(criteria, "quantity", &quantity)
	criteria = Eq[int64](criteria, "id_client", nil)

	if len(criteria) != 2 {
		t.Fatalf("len(criteria) = %d, want 2 (nil values must be skipped)", len(criteria))
	}

	if criteria[0].Field != "name" || criteria[0].Kind != MatchSubstring || criteria[0].Value != "ann" {
		t.Errorf("unexpected first criterion: %+v", criteria[0])
	}
	if criteria[1].Field != "quantity" || criteria[1].Kind != MatchEquals || criteria[1].Value != 3 {
		t.Errorf("unexpected second criterion: %+v", criteria[1])
	}
}
