package document_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderBy(t *testing.T) {
	repo := &BaseDocumentRepo[struct{}]{
		selectCols: []string{"total_amount", "payment_status"},
	}

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "date DESC", false},
		{"date", "date ASC", false},
		{"-date", "date DESC", false},
		{"+number", "number ASC", false},
		{"-total_amount", "total_amount DESC", false},
		{"created_at", "created_at ASC", false},
		{"nonexistent", "", true},
		{"-", "", true},
		{"date; DROP TABLE doc_sales", "", true},
	}

	for _, tt := range tests {
		got, err := repo.parseOrderBy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "orderBy=%q", tt.in)
			continue
		}
		require.NoError(t, err, "orderBy=%q", tt.in)
		assert.Equal(t, tt.want, got, "orderBy=%q", tt.in)
	}
}
