package schedule

import (
	"testing"
	"time"
)

func TestParseNaturalTime(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		text string
		now  time.Time
		want time.Time
	}{
		{
			name: "tomorrow with ampm",
			text: "remind me tomorrow at 8AM",
			now:  now,
			want: time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "tomorrow default nine",
			text: "tomorrow",
			now:  now,
			want: time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "tomorrow with hhmm",
			text: "tomorrow at 14:30",
			now:  now,
			want: time.Date(2025, 1, 2, 14, 30, 0, 0, time.UTC),
		},
		{
			name: "relative minutes",
			text: "ping me in 30 minutes",
			now:  now,
			want: now.Add(30 * time.Minute),
		},
		{
			name: "relative hours",
			text: "in 2 hours",
			now:  now,
			want: now.Add(2 * time.Hour),
		},
		{
			name: "absolute ignores now",
			text: "meeting 2025-06-15 10:45",
			now:  now,
			want: time.Date(2025, 6, 15, 10, 45, 0, 0, time.UTC),
		},
		{
			name: "absolute wins over relative",
			text: "2025-06-15 10:45 or in 5 minutes",
			now:  now,
			want: time.Date(2025, 6, 15, 10, 45, 0, 0, time.UTC),
		},
		{
			name: "today in the future stays today",
			text: "today at 3pm",
			now:  now,
			want: time.Date(2025, 1, 1, 15, 0, 0, 0, time.UTC),
		},
		{
			name: "today in the past rolls forward",
			text: "today at 3pm",
			now:  time.Date(2025, 1, 1, 16, 0, 0, 0, time.UTC),
			want: time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC),
		},
		{
			name: "equal to now rolls forward",
			text: "at 16:00",
			now:  time.Date(2025, 1, 1, 16, 0, 0, 0, time.UTC),
			want: time.Date(2025, 1, 2, 16, 0, 0, 0, time.UTC),
		},
		{
			name: "bare time rolls forward",
			text: "call mom 7am",
			now:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
			want: time.Date(2025, 1, 2, 7, 0, 0, 0, time.UTC),
		},
		{
			name: "twelve am is midnight",
			text: "tomorrow at 12am",
			now:  now,
			want: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "twelve pm is noon",
			text: "tomorrow at 12pm",
			now:  now,
			want: time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "ampm preferred over hhmm",
			text: "tomorrow at 8pm or 10:15",
			now:  now,
			want: time.Date(2025, 1, 2, 20, 0, 0, 0, time.UTC),
		},
		{
			name: "impossible date falls through to bare time",
			text: "2025-13-40 10:00",
			now:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
			want: time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseNaturalTime(tc.text, tc.now)
			if !ok {
				t.Fatalf("ParseNaturalTime(%q) matched nothing", tc.text)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseNaturalTime(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestParseNaturalTimeNoMatch(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, text := range []string{"", "hello there", "someday maybe", "in a while"} {
		if _, ok := ParseNaturalTime(text, now); ok {
			t.Errorf("ParseNaturalTime(%q) matched, want no match", text)
		}
	}
}
