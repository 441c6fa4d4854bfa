package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

func TestEbookProgress_Percentage(t *testing.T) {
	tests := []struct {
		name       string
		lastPage   int
		totalPages int
		want       string
	}{
		{
			name:       "nothing read",
			lastPage:   0,
			totalPages: 200,
			want:       "0",
		},
		{
			name:       "quarter read",
			lastPage:   50,
			totalPages: 200,
			want:       "25",
		},
		{
			name:       "fully read",
			lastPage:   120,
			totalPages: 120,
			want:       "100",
		},
		{
			name:       "rounds to two decimal places",
			lastPage:   1,
			totalPages: 3,
			want:       "33.33",
		},
		{
			name:       "zero total pages yields zero",
			lastPage:   10,
			totalPages: 0,
			want:       "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.EbookProgress{LastPageRead: tt.lastPage}
			got := p.Percentage(tt.totalPages)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
