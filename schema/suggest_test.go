package schema

import "testing"

func TestSuggest(t *testing.T) {
	tests := []struct {
		name       string
		want       string
		candidates []string
		out        string
	}{
		{
			name:       "case slip",
			want:       "name",
			candidates: []string{"age", "nAme"},
			out:        "nAme",
		},
		{
			name:       "transposition",
			want:       "name",
			candidates: []string{"nmae", "years"},
			out:        "nmae",
		},
		{
			name:       "nothing close",
			want:       "name",
			candidates: []string{"longitude", "latitude"},
			out:        "",
		},
		{
			name:       "no candidates",
			want:       "name",
			candidates: nil,
			out:        "",
		},
		{
			name:       "smallest of equally close wins",
			want:       "nam",
			candidates: []string{"namm", "naam"},
			out:        "naam",
		},
		{
			name:       "closer beats earlier",
			want:       "address",
			candidates: []string{"addressee", "adress"},
			out:        "adress",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := suggest(tc.want, tc.candidates); got != tc.out {
				t.Errorf("suggest(%q, %v) = %q, want %q", tc.want, tc.candidates, got, tc.out)
			}
		})
	}
}
