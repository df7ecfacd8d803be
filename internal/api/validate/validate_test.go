package validate

import "testing"

func TestVoteCounts(t *testing.T) {
	cases := []struct {
		name     string
		likes    int
		dislikes int
		wantErr  bool
	}{
		{"both zero", 0, 0, false},
		{"positive", 10, 3, false},
		{"negative likes", -1, 0, true},
		{"negative dislikes", 0, -5, true},
		{"both negative", -2, -2, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := VoteCounts(tc.likes, tc.dislikes)
			if (err != nil) != tc.wantErr {
				t.Fatalf("VoteCounts(%d, %d) error = %v, wantErr %v", tc.likes, tc.dislikes, err, tc.wantErr)
			}
		})
	}
}

func TestNonEmpty(t *testing.T) {
	if err := NonEmpty("query", ""); err == nil {
		t.Fatalf("expected error for empty value")
	}
	if err := NonEmpty("query", "parks"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
