package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwbasket/kwbasket/internal/common"
)

func TestReadKeywords(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		column  string
		want    []string
		wantErr error
	}{
		{
			name:   "basic",
			csv:    "Keyword\nblue shirt\nrunning shoe\n",
			want:   []string{"blue shirt", "running shoe"},
			column: "",
		},
		{
			name:   "case insensitive header",
			csv:    "keyword\na\n",
			want:   []string{"a"},
			column: "",
		},
		{
			name:   "custom column",
			csv:    "Term,Volume\nlederhosen,100\nbelt,50\n",
			column: "Term",
			want:   []string{"lederhosen", "belt"},
		},
		{
			name:   "keyword column among others",
			csv:    "Id,Keyword,Volume\n1,shirt,100\n2,dress,50\n",
			want:   []string{"shirt", "dress"},
			column: "",
		},
		{
			name:   "blank cells skipped",
			csv:    "Keyword\nshirt\n\n   \ndress\n",
			want:   []string{"shirt", "dress"},
			column: "",
		},
		{
			name:   "duplicates preserved",
			csv:    "Keyword\nshirt\nshirt\n",
			want:   []string{"shirt", "shirt"},
			column: "",
		},
		{
			name:   "BOM in header",
			csv:    "\uFEFFKeyword\nshirt\n",
			want:   []string{"shirt"},
			column: "",
		},
		{
			name:    "empty file",
			csv:     "",
			column:  "",
			wantErr: common.ErrMalformedInput,
		},
		{
			name:    "missing column",
			csv:     "Term\nshirt\n",
			column:  "",
			wantErr: common.ErrMalformedInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadKeywords(strings.NewReader(tt.csv), tt.column)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadKeywordsHeaderOnly(t *testing.T) {
	got, err := ReadKeywords(strings.NewReader("Keyword\n"), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}
