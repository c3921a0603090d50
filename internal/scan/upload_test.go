package scan_test

import (
	"context"
	"errors"
	"testing"

	"github.com/BlackDragon0207/siro/internal/scan"
	"github.com/BlackDragon0207/siro/internal/state"
	"github.com/BlackDragon0207/siro/internal/youtube"
)

func TestUploadScannerNotifiesShortForNewUpload(t *testing.T) {
	store := newTestStore(t)
	source := &fakeSource{
		latest: &youtube.Upload{ID: "v1", Title: "짧은 영상"},
		details: map[string]*youtube.Details{
			"v1": {ID: "v1", Title: "짧은 영상", Duration: "PT2M30S", LiveBroadcast: "none"},
		},
	}
	notifier := &recordingNotifier{}
	scanner := scan.NewUploadScanner(source, store, notifier, "UCtest", nil)

	if err := scanner.Scan(context.Background()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}
	if notifier.sent[0].kind != "short" || notifier.sent[0].videoID != "v1" {
		t.Fatalf("unexpected notification: %+v", notifier.sent[0])
	}
	if got := store.Read(context.Background(), state.KindShorts); got.LastID != "v1" {
		t.Fatalf("shorts state not persisted: %+v", got)
	}
	if got := store.Read(context.Background(), state.KindUpload); !got.Empty() {
		t.Fatalf("upload state should be untouched: %+v", got)
	}
}

func TestUploadScannerClassificationBoundary(t *testing.T) {
	cases := []struct {
		name       string
		details    youtube.Details
		expectKind string
	}{
		{
			name:       "exactly 180s is a short",
			details:    youtube.Details{Duration: "PT3M"},
			expectKind: "short",
		},
		{
			name:       "181s is standard",
			details:    youtube.Details{Duration: "PT3M1S"},
			expectKind: "upload",
		},
		{
			name:       "missing duration with shorts tag",
			details:    youtube.Details{Description: "새 영상입니다 #Shorts"},
			expectKind: "short",
		},
		{
			name:       "missing duration without tag",
			details:    youtube.Details{Description: "새 영상입니다"},
			expectKind: "upload",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newTestStore(t)
			details := tc.details
			details.ID = "v1"
			details.Title = "영상"
			source := &fakeSource{
				latest:  &youtube.Upload{ID: "v1", Title: "영상"},
				details: map[string]*youtube.Details{"v1": &details},
			}
			notifier := &recordingNotifier{}
			scanner := scan.NewUploadScanner(source, store, notifier, "UCtest", nil)

			if err := scanner.Scan(context.Background()); err != nil {
				t.Fatalf("Scan failed: %v", err)
			}
			if len(notifier.sent) != 1 {
				t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
			}
			if notifier.sent[0].kind != tc.expectKind {
				t.Fatalf("expected %s notification, got %s", tc.expectKind, notifier.sent[0].kind)
			}
		})
	}
}

func TestUploadScannerIsIdempotentAcrossTicks(t *testing.T) {
	store := newTestStore(t)
	source := &fakeSource{
		latest: &youtube.Upload{ID: "v1", Title: "영상"},
		details: map[string]*youtube.Details{
			"v1": {ID: "v1", Title: "영상", Duration: "PT10M"},
		},
	}
	notifier := &recordingNotifier{}
	scanner := scan.NewUploadScanner(source, store, notifier, "UCtest", nil)

	for i := 0; i < 2; i++ {
		if err := scanner.Scan(context.Background()); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected exactly 1 notification across two ticks, got %d", len(notifier.sent))
	}
}

func TestUploadScannerSkipsIDSeenInEitherRecord(t *testing.T) {
	for _, kind := range []state.Kind{state.KindUpload, state.KindShorts} {
		t.Run(string(kind), func(t *testing.T) {
			store := newTestStore(t)
			if err := store.Write(context.Background(), kind, state.Record{LastID: "v1"}); err != nil {
				t.Fatalf("seed state: %v", err)
			}
			source := &fakeSource{latest: &youtube.Upload{ID: "v1", Title: "영상"}}
			notifier := &recordingNotifier{}
			scanner := scan.NewUploadScanner(source, store, notifier, "UCtest", nil)

			if err := scanner.Scan(context.Background()); err != nil {
				t.Fatalf("Scan failed: %v", err)
			}
			if len(notifier.sent) != 0 {
				t.Fatalf("expected no notifications for seen id, got %d", len(notifier.sent))
			}
		})
	}
}

func TestUploadScannerLeavesLiveContentAlone(t *testing.T) {
	store := newTestStore(t)
	source := &fakeSource{
		latest: &youtube.Upload{ID: "v1", Title: "방송"},
		details: map[string]*youtube.Details{
			"v1": {ID: "v1", Title: "방송", Duration: "PT1M", LiveBroadcast: "live"},
		},
	}
	notifier := &recordingNotifier{}
	scanner := scan.NewUploadScanner(source, store, notifier, "UCtest", nil)

	if err := scanner.Scan(context.Background()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("expected no notifications for live content, got %d", len(notifier.sent))
	}
	for _, kind := range state.Kinds() {
		if got := store.Read(context.Background(), kind); !got.Empty() {
			t.Fatalf("expected %s state untouched, got %+v", kind, got)
		}
	}
}

func TestUploadScannerAbortsOnFetchFailure(t *testing.T) {
	store := newTestStore(t)
	source := &fakeSource{latestErr: youtube.ErrUpstream}
	notifier := &recordingNotifier{}
	scanner := scan.NewUploadScanner(source, store, notifier, "UCtest", nil)

	if err := scanner.Scan(context.Background()); err == nil {
		t.Fatal("expected error when upstream fetch fails")
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("expected no notifications after failed fetch, got %d", len(notifier.sent))
	}
	if got := store.Read(context.Background(), state.KindUpload); !got.Empty() {
		t.Fatalf("state mutated despite failed fetch: %+v", got)
	}
}

func TestUploadScannerSwallowsDispatchFailure(t *testing.T) {
	store := newTestStore(t)
	source := &fakeSource{
		latest: &youtube.Upload{ID: "v1", Title: "영상"},
		details: map[string]*youtube.Details{
			"v1": {ID: "v1", Title: "영상", Duration: "PT10M"},
		},
	}
	notifier := &recordingNotifier{err: errors.New("webhook unavailable")}
	scanner := scan.NewUploadScanner(source, store, notifier, "UCtest", nil)

	if err := scanner.Scan(context.Background()); err != nil {
		t.Fatalf("dispatch failure should not surface, got %v", err)
	}
	if got := store.Read(context.Background(), state.KindUpload); got.LastID != "v1" {
		t.Fatalf("state should record the attempt despite dispatch failure: %+v", got)
	}
}
