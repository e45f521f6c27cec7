package diffview

import (
	"testing"

	"beetbridge/internal/decision"
)

func TestParseDifference(t *testing.T) {
	tests := []struct {
		name string
		line string
		want decision.Difference
	}{
		{
			name: "paren field change",
			line: "≠ artist (Foo -> Bar)",
			want: decision.Difference{Kind: decision.DiffFieldChange, FieldName: "artist", OldValue: "Foo", NewValue: "Bar"},
		},
		{
			name: "paren vs form",
			line: "year (1997 vs. 1998)",
			want: decision.Difference{Kind: decision.DiffFieldChange, FieldName: "year", OldValue: "1997", NewValue: "1998"},
		},
		{
			name: "arrow field change",
			line: "≠ title: Track One -> Track Two",
			want: decision.Difference{Kind: decision.DiffFieldChange, FieldName: "title", OldValue: "Track One", NewValue: "Track Two"},
		},
		{
			name: "track change",
			line: "(#2) Intro (1:02) -> (#3) Intro (1:03)",
			want: decision.Difference{Kind: decision.DiffFieldChange, FieldName: "track", OldValue: "(#2) Intro (1:02)", NewValue: "(#3) Intro (1:03)"},
		},
		{
			name: "bullet new value only",
			line: "* label: ACME Records",
			want: decision.Difference{Kind: decision.DiffFieldChange, FieldName: "label", NewValue: "ACME Records"},
		},
		{
			name: "missing",
			line: "missing cover art",
			want: decision.Difference{Kind: decision.DiffMissing, FieldName: "cover art"},
		},
		{
			name: "extra",
			line: "extra tracks",
			want: decision.Difference{Kind: decision.DiffExtra, FieldName: "tracks"},
		},
		{
			name: "unmatched",
			line: "unmatched tracks",
			want: decision.Difference{Kind: decision.DiffExtra, FieldName: "tracks"},
		},
		{
			name: "bare mismatch marker",
			line: "≠ something changed",
			want: decision.Difference{Kind: decision.DiffMismatch},
		},
		{
			name: "generic fallback",
			line: "some unstructured note",
			want: decision.Difference{Kind: decision.DiffGeneric},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDifference(tc.line)
			if got.Kind != tc.want.Kind {
				t.Fatalf("Kind = %q, want %q", got.Kind, tc.want.Kind)
			}
			if got.FieldName != tc.want.FieldName {
				t.Fatalf("FieldName = %q, want %q", got.FieldName, tc.want.FieldName)
			}
			if got.OldValue != tc.want.OldValue || got.NewValue != tc.want.NewValue {
				t.Fatalf("values = %q -> %q, want %q -> %q", got.OldValue, got.NewValue, tc.want.OldValue, tc.want.NewValue)
			}
			if got.RawLine != tc.line {
				t.Fatalf("RawLine = %q, want verbatim input", got.RawLine)
			}
		})
	}
}
