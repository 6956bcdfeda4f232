package taxonomy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"whatfeeling/internal/emotion"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

const joyJSON = `[{"name":"Joy","color":"Yellow","secondaryEmotions":[{"name":"Content","color":"Yellow","tertiaryEmotions":[{"name":"Peaceful","color":"Yellow"}]}]}]`

func TestHTTPSource_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != ListPath {
			t.Errorf("expected path %s, got %s", ListPath, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(joyJSON))
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL+"/", time.Second).WithHTTPClient(server.Client())
	roots, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "Joy", roots[0].Name)
	assert.NotNil(t, roots[0].Child("Content").Child("Peaceful"))
}

func TestHTTPSource_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewHTTPSource(server.URL, time.Second).WithHTTPClient(server.Client()).Fetch(context.Background())
	assert.EqualError(t, err, "HTTP error! status: 503")
}

func TestHTTPSource_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer server.Close()

	_, err := NewHTTPSource(server.URL, time.Second).WithHTTPClient(server.Client()).Fetch(context.Background())
	assert.ErrorContains(t, err, "failed to decode taxonomy")
}

func TestHTTPSource_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHTTPSource(url, time.Second).Fetch(context.Background())
	assert.ErrorContains(t, err, "request failed")
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "taxonomy.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(joyJSON), 0644))
	roots, err := FileSource{Path: jsonPath}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Joy", roots[0].Name)

	yamlPath := filepath.Join(dir, "taxonomy.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("- name: Sad\n  color: Blue\n"), 0644))
	roots, err = FileSource{Path: yamlPath}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sad", roots[0].Name)

	_, err = FileSource{Path: filepath.Join(dir, "missing.json")}.Fetch(context.Background())
	assert.ErrorContains(t, err, "failed to read taxonomy file")
}

type countingSource struct {
	calls atomic.Int32
	gate  chan struct{}
	roots []*emotion.Node
	err   error
}

func (s *countingSource) Fetch(ctx context.Context) ([]*emotion.Node, error) {
	s.calls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	return s.roots, s.err
}

func TestLoader_Success(t *testing.T) {
	src := &countingSource{roots: []*emotion.Node{{Name: "Joy", Color: "Yellow"}}}
	l := NewLoader(src)

	assert.Equal(t, StatusPending, l.Result().Status)
	_, err := l.Roots()
	assert.ErrorIs(t, err, ErrNotLoaded)

	roots, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, roots, 1)
	assert.Equal(t, StatusReady, l.Result().Status)

	// Loaded once per session.
	_, err = l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestLoader_FailureIsTerminal(t *testing.T) {
	src := &countingSource{err: errors.New("connection refused")}
	l := NewLoader(src)

	_, err := l.Load(context.Background())
	require.Error(t, err)
	res := l.Result()
	assert.Equal(t, StatusFailed, res.Status)
	assert.Empty(t, res.Roots)
	assert.EqualError(t, res.Err, "connection refused")

	_, err = l.Load(context.Background())
	assert.EqualError(t, err, "connection refused")
	assert.Equal(t, int32(1), src.calls.Load(), "no retry after failure")
}

func TestLoader_InvalidTaxonomyFails(t *testing.T) {
	src := &countingSource{roots: []*emotion.Node{{Name: "Joy"}, {Name: "Joy"}}}
	_, err := NewLoader(src).Load(context.Background())
	assert.ErrorContains(t, err, "invalid taxonomy")
}

func TestLoader_ConcurrentLoadsShareOneFetch(t *testing.T) {
	src := &countingSource{
		gate:  make(chan struct{}),
		roots: []*emotion.Node{{Name: "Joy"}},
	}
	l := NewLoader(src)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Load(context.Background())
			assert.NoError(t, err)
		}()
	}

	// Let the callers pile up on the in-flight fetch before releasing it.
	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
}

func TestStaticSource(t *testing.T) {
	roots, err := StaticSource{{Name: "Joy"}}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, roots, 1)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "ready", StatusReady.String())
	assert.Equal(t, "failed", StatusFailed.String())
}
