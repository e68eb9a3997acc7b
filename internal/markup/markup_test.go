package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		src      string
		want     string
		contains []string
	}{
		"empty": {
			src:  "",
			want: "",
		},
		"blank lines only": {
			src:  "\n\n",
			want: "",
		},
		"paragraph": {
			src:  "Hello **world**",
			want: "<p>Hello <strong>world</strong></p>\n",
		},
		"bullet list": {
			src:  "- one\n- two",
			want: "<ul>\n<li>one</li>\n<li>two</li>\n</ul>\n",
		},
		"gfm strikethrough and autolink": {
			src:      "~~old~~ see https://example.com",
			contains: []string{"<del>old</del>", `<a href="https://example.com">https://example.com</a>`},
		},
		"inline html kept": {
			src:      "Press <kbd>Ctrl</kbd>",
			contains: []string{"<kbd>Ctrl</kbd>"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ToHTML(tt.src)
			require.NoError(t, err)
			if tt.contains == nil {
				assert.Equal(t, tt.want, got)
				return
			}
			for _, c := range tt.contains {
				assert.Contains(t, got, c)
			}
		})
	}
}
