package report

import (
	"strings"
	"testing"
)

const sampleManifest = `{"file_path":"a/1.wav","speaker_id":"a","duration_ms":1000,"split":"train","rating":4.0}
{"file_path":"a/2.wav","speaker_id":"a","duration_ms":2000,"split":"train","rating":5.0}
{"file_path":"b/1.wav","speaker_id":"b","duration_ms":500,"split":"test","rating":2.0}
{"file_path":"c/1.wav","speaker_id":"c","duration_ms":750,"split":"val","rating":3.5}
`

func TestAggregateGroupsAndOrders(t *testing.T) {
	stats, err := Aggregate(strings.NewReader(sampleManifest))
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected 3 splits, got %d", len(stats))
	}

	if stats[0].Split != "train" || stats[1].Split != "val" || stats[2].Split != "test" {
		t.Fatalf("unexpected order: %v", stats)
	}

	train := stats[0]
	if train.Clips != 2 || train.Speakers != 1 {
		t.Fatalf("unexpected train stats: %+v", train)
	}
	if train.TotalDurationMS != 3000 {
		t.Fatalf("unexpected train duration: %v", train.TotalDurationMS)
	}
	if train.MeanRating != 4.5 {
		t.Fatalf("unexpected train mean rating: %v", train.MeanRating)
	}
}

func TestAggregateEmptyManifest(t *testing.T) {
	stats, err := Aggregate(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if len(stats) != 0 {
		t.Fatalf("expected no stats, got %v", stats)
	}
}

func TestAggregateSkipsBlankLines(t *testing.T) {
	stats, err := Aggregate(strings.NewReader("\n" + sampleManifest + "\n"))
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected 3 splits, got %d", len(stats))
	}
}

func TestAggregateRejectsMalformedLine(t *testing.T) {
	if _, err := Aggregate(strings.NewReader("{not json}\n")); err == nil {
		t.Fatal("expected error for malformed line")
	}
}
