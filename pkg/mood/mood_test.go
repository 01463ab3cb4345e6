package mood

import "testing"

func TestScoreOrder(t *testing.T) {
	prev := 0
	for _, m := range All() {
		if m.Score() <= prev {
			t.Fatalf("scores not strictly increasing at %s", m)
		}
		prev = m.Score()
	}
}

func TestFromAverageThresholds(t *testing.T) {
	cases := []struct {
		avg  float64
		want Mood
	}{
		{1.0, Bad},
		{1.49, Bad},
		{1.5, Low},
		{2.49, Low},
		{2.5, Okay},
		{3.49, Okay},
		{3.5, Good},
		{4.49, Good},
		{4.5, Great},
		{5.0, Great},
	}
	for _, tc := range cases {
		if got := FromAverage(tc.avg); got != tc.want {
			t.Fatalf("FromAverage(%v) = %s, want %s", tc.avg, got, tc.want)
		}
	}
}

func TestFromAverageMonotonic(t *testing.T) {
	prev := 0
	for avg := 1.0; avg <= 5.0; avg += 0.01 {
		score := FromAverage(avg).Score()
		if score < prev {
			t.Fatalf("class decreased at avg %v", avg)
		}
		prev = score
	}
}

func TestParse(t *testing.T) {
	m, err := Parse("okay")
	if err != nil || m != Okay {
		t.Fatalf("Parse(okay) = %v, %v", m, err)
	}
	if _, err := Parse("meh"); err == nil {
		t.Fatalf("expected error for unknown mood")
	}
}
