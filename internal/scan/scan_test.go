package scan_test

import (
	"context"
	"testing"

	"github.com/BlackDragon0207/siro/internal/state"
	"github.com/BlackDragon0207/siro/internal/testsupport"
	"github.com/BlackDragon0207/siro/internal/youtube"
)

type fakeSource struct {
	latest     *youtube.Upload
	latestErr  error
	details    map[string]*youtube.Details
	detailsErr map[string]error
	recent     []string
	recentErr  error
}

func (f *fakeSource) LatestUpload(context.Context, string) (*youtube.Upload, error) {
	return f.latest, f.latestErr
}

func (f *fakeSource) VideoDetails(_ context.Context, videoID string) (*youtube.Details, error) {
	if err, ok := f.detailsErr[videoID]; ok {
		return nil, err
	}
	return f.details[videoID], nil
}

func (f *fakeSource) RecentUploadIDs(context.Context, string, int64) ([]string, error) {
	return f.recent, f.recentErr
}

type notification struct {
	kind    string
	title   string
	videoID string
}

type recordingNotifier struct {
	sent []notification
	err  error
}

func (r *recordingNotifier) NotifyUpload(_ context.Context, title, videoID string) error {
	r.sent = append(r.sent, notification{kind: "upload", title: title, videoID: videoID})
	return r.err
}

func (r *recordingNotifier) NotifyShort(_ context.Context, title, videoID string) error {
	r.sent = append(r.sent, notification{kind: "short", title: title, videoID: videoID})
	return r.err
}

func (r *recordingNotifier) NotifyLive(_ context.Context, title, videoID string) error {
	r.sent = append(r.sent, notification{kind: "live", title: title, videoID: videoID})
	return r.err
}

func (r *recordingNotifier) TestNotification(context.Context) error {
	r.sent = append(r.sent, notification{kind: "test"})
	return r.err
}

func newTestStore(t *testing.T) *state.Store {
	t.Helper()
	return testsupport.MustOpenStore(t, testsupport.NewConfig(t))
}
