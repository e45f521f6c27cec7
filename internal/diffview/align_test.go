package diffview

import "testing"

func TestAlignCharReplacement(t *testing.T) {
	oldMarked, newMarked := Align("Track One", "Track Two", GranularityChar)
	if oldMarked != "Track ~~One~~" {
		t.Fatalf("old = %q, want Track ~~One~~", oldMarked)
	}
	if newMarked != "Track **Two**" {
		t.Fatalf("new = %q, want Track **Two**", newMarked)
	}
}

func TestAlignWordInsertion(t *testing.T) {
	oldMarked, newMarked := Align("Greatest Hits", "Greatest Hits Live", GranularityWord)
	if oldMarked != "Greatest Hits" {
		t.Fatalf("old = %q, want unmarked", oldMarked)
	}
	if newMarked != "Greatest Hits **Live**" {
		t.Fatalf("new = %q, want Greatest Hits **Live**", newMarked)
	}
}

func TestAlignEqualValuesUnmarked(t *testing.T) {
	oldMarked, newMarked := Align("Same Title", "Same Title", GranularityChar)
	if oldMarked != "Same Title" || newMarked != "Same Title" {
		t.Fatalf("got %q / %q, want both unmarked", oldMarked, newMarked)
	}
}

func TestSmartPicksWordForDurations(t *testing.T) {
	oldMarked, newMarked := Align("Intro (1:02)", "Intro (1:03)", GranularitySmart)
	if oldMarked != "Intro ~~(1:02)~~" {
		t.Fatalf("old = %q, want whole token marked", oldMarked)
	}
	if newMarked != "Intro **(1:03)**" {
		t.Fatalf("new = %q, want whole token marked", newMarked)
	}
}

func TestSmartPicksWordForTrackTokens(t *testing.T) {
	a := NewAligner()
	if got := a.pickGranularity("(#2) Intro", "(#3) Intro"); got != GranularityWord {
		t.Fatalf("pickGranularity = %v, want GranularityWord", got)
	}
}

func TestSmartThresholdSwitchesToWord(t *testing.T) {
	a := NewAligner()
	short := "A Short Album Title"
	long := "An Extremely Long Album Title That Exceeds The Character Threshold"
	if got := a.pickGranularity(short, short); got != GranularityChar {
		t.Fatalf("short values: pickGranularity = %v, want GranularityChar", got)
	}
	if got := a.pickGranularity(long, short); got != GranularityWord {
		t.Fatalf("long values: pickGranularity = %v, want GranularityWord", got)
	}
}

func TestAlignCustomThreshold(t *testing.T) {
	a := NewAligner()
	a.CharThreshold = 5
	if got := a.pickGranularity("abcdef", "abcdeg"); got != GranularityWord {
		t.Fatalf("pickGranularity = %v, want GranularityWord above custom threshold", got)
	}
}
