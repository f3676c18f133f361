package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/suechart/pkg/chart"
	"github.com/matzehuels/suechart/pkg/document"
	"github.com/matzehuels/suechart/pkg/errors"
	"github.com/matzehuels/suechart/pkg/layer"
	"github.com/matzehuels/suechart/pkg/link"
	"github.com/matzehuels/suechart/pkg/pipeline"
	"github.com/matzehuels/suechart/pkg/render"
)

const testSVG = `{"svg":"<svg width=\"300\" height=\"200\"><g><rect width=\"10\" height=\"10\"/></g></svg>"}`

type env struct {
	api     *httptest.Server
	store   *document.FileStore
	renders atomic.Int32
	paths   chan string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{paths: make(chan string, 16)}

	renderSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.renders.Add(1)
		e.paths <- r.URL.Path
		_, _ = io.WriteString(w, testSVG)
	}))
	t.Cleanup(renderSrv.Close)

	client, err := render.NewClient(renderSrv.URL)
	if err != nil {
		t.Fatal(err)
	}
	store, err := document.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	e.store = store

	srv := New(store, client, log.New(io.Discard))
	e.api = httptest.NewServer(srv.Handler())
	t.Cleanup(e.api.Close)
	return e
}

// seed stores a document with one selected rectangle.
func (e *env) seed(t *testing.T) *document.Document {
	t.Helper()
	doc := document.New("report")
	rect := &document.Layer{
		ID:    "rect-1",
		Name:  "Revenue",
		Type:  document.TypeRectangle,
		Frame: layer.Frame{X: 10, Y: 20, Width: 300, Height: 200},
	}
	if err := doc.AddLayer(rect); err != nil {
		t.Fatal(err)
	}
	doc.Select(rect.ID)
	if err := e.store.Put(context.Background(), doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func (e *env) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, e.api.URL+path, r)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func TestHealth(t *testing.T) {
	e := newEnv(t)
	resp, body := e.do(t, http.MethodGet, "/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := decode[map[string]string](t, body)["status"]; got != "ok" {
		t.Errorf("status = %q, want ok", got)
	}
}

func TestChartTypes(t *testing.T) {
	e := newEnv(t)
	_, body := e.do(t, http.MethodGet, "/v1/chart-types", nil)
	got := decode[map[string][]chart.Type](t, body)["chartTypes"]
	if len(got) != len(chart.Catalog()) {
		t.Fatalf("got %d types, want %d", len(got), len(chart.Catalog()))
	}
	if got[0] != chart.Catalog()[0] {
		t.Errorf("first type = %q, want %q", got[0], chart.Catalog()[0])
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	e := newEnv(t)
	resp, body := e.do(t, http.MethodGet, "/v1/documents/missing", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if got := decode[errorResponse](t, body).Error.Code; got != errors.ErrCodeNotFound {
		t.Errorf("code = %q, want %q", got, errors.ErrCodeNotFound)
	}
}

func TestPutAndGetDocument(t *testing.T) {
	e := newEnv(t)
	doc := document.New("put")
	doc.ID = ""

	resp, _ := e.do(t, http.MethodPut, "/v1/documents/doc-1", doc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d", resp.StatusCode)
	}

	resp, body := e.do(t, http.MethodGet, "/v1/documents/doc-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}
	got := decode[document.Document](t, body)
	if got.ID != "doc-1" || got.Name != "put" {
		t.Errorf("got %q/%q, want doc-1/put", got.ID, got.Name)
	}
}

func TestPutDocumentIDMismatch(t *testing.T) {
	e := newEnv(t)
	doc := document.New("put")
	doc.ID = "other"

	resp, body := e.do(t, http.MethodPut, "/v1/documents/doc-1", doc)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if got := decode[errorResponse](t, body).Error.Code; got != errors.ErrCodeInvalidInput {
		t.Errorf("code = %q", got)
	}
}

func TestSyncNewChart(t *testing.T) {
	e := newEnv(t)
	doc := e.seed(t)

	resp, body := e.do(t, http.MethodPost, "/v1/documents/"+doc.ID+"/sync", syncRequest{
		ChartType: chart.TypeLine,
		Data:      "a\tb\n1\t2",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	got := decode[syncResponse](t, body)
	if got.Error != nil {
		t.Fatalf("unexpected error %+v", got.Error)
	}
	if got.State != pipeline.SingleUnlinked.String() {
		t.Errorf("state = %q", got.State)
	}
	if len(got.Messages) != 1 || got.Messages[0] != pipeline.MsgInserted {
		t.Errorf("messages = %v", got.Messages)
	}
	if path := <-e.paths; path != "/chart/online/line" {
		t.Errorf("render path = %q", path)
	}

	stored, err := e.store.Get(context.Background(), doc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(stored.Layers()); n != 2 {
		t.Fatalf("stored %d layers, want 2", n)
	}
	master, _ := stored.LayerByID("rect-1")
	if dec := link.Decode(master.Name); dec.Role != link.RoleMaster {
		t.Errorf("placeholder name %q is not linked", master.Name)
	}
}

func TestSyncFailureLeavesDocument(t *testing.T) {
	tests := []struct {
		name string
		req  syncRequest
		code errors.Code
		msg  string
	}{
		{
			name: "no selection",
			req:  syncRequest{Selection: nil},
			code: errors.ErrCodeSelection,
			msg:  pipeline.MsgSelectRectangle,
		},
		{
			name: "prompt dismissed",
			req:  syncRequest{Selection: []string{"rect-1"}},
			code: errors.ErrCodeCancelled,
			msg:  pipeline.MsgBye,
		},
		{
			name: "unknown chart type",
			req:  syncRequest{Selection: []string{"rect-1"}, ChartType: "pie", Data: "a\n1"},
			code: errors.ErrCodeInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			doc := e.seed(t)
			if tt.req.Selection == nil {
				doc.Select()
				if err := e.store.Put(context.Background(), doc); err != nil {
					t.Fatal(err)
				}
			}

			resp, body := e.do(t, http.MethodPost, "/v1/documents/"+doc.ID+"/sync", tt.req)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", resp.StatusCode, body)
			}
			got := decode[syncResponse](t, body)
			if got.Error == nil || got.Error.Code != tt.code {
				t.Fatalf("error = %+v, want code %s", got.Error, tt.code)
			}
			if tt.msg != "" && (len(got.Messages) != 1 || got.Messages[0] != tt.msg) {
				t.Errorf("messages = %v, want [%s]", got.Messages, tt.msg)
			}
			if n := e.renders.Load(); n != 0 {
				t.Errorf("render service called %d times", n)
			}

			stored, err := e.store.Get(context.Background(), doc.ID)
			if err != nil {
				t.Fatal(err)
			}
			if n := len(stored.Layers()); n != 1 {
				t.Errorf("stored %d layers, want 1", n)
			}
		})
	}
}

func TestSyncUnknownLayer(t *testing.T) {
	e := newEnv(t)
	doc := e.seed(t)

	resp, _ := e.do(t, http.MethodPost, "/v1/documents/"+doc.ID+"/sync", syncRequest{Selection: []string{"nope"}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSyncMalformedBody(t *testing.T) {
	e := newEnv(t)
	doc := e.seed(t)

	req, _ := http.NewRequest(http.MethodPost, e.api.URL+"/v1/documents/"+doc.ID+"/sync", strings.NewReader("{"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSyncThenUnlink(t *testing.T) {
	e := newEnv(t)
	doc := e.seed(t)

	_, body := e.do(t, http.MethodPost, "/v1/documents/"+doc.ID+"/sync", syncRequest{
		ChartType: chart.TypeArea,
		Data:      chart.ExampleTable,
	})
	if got := decode[syncResponse](t, body); got.Error != nil {
		t.Fatalf("sync failed: %+v", got.Error)
	}

	resp, body := e.do(t, http.MethodPost, "/v1/documents/"+doc.ID+"/unlink", unlinkRequest{Selection: []string{"rect-1"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decode[syncResponse](t, body)
	if got.Error != nil {
		t.Fatalf("unlink failed: %+v", got.Error)
	}
	if got.State != pipeline.SingleLinkedMaster.String() {
		t.Errorf("state = %q", got.State)
	}

	stored, err := e.store.Get(context.Background(), doc.ID)
	if err != nil {
		t.Fatal(err)
	}
	layers := stored.Layers()
	if len(layers) != 1 || layers[0].Name != "Revenue" {
		t.Errorf("layers after unlink = %+v", layers)
	}
}

func TestUnlinkUnlinkedLayer(t *testing.T) {
	e := newEnv(t)
	doc := e.seed(t)

	_, body := e.do(t, http.MethodPost, "/v1/documents/"+doc.ID+"/unlink", nil)
	got := decode[syncResponse](t, body)
	if got.Error == nil || got.Error.Code != errors.ErrCodeSelection {
		t.Errorf("error = %+v, want SELECTION", got.Error)
	}
}

func TestConcurrentSyncsAreSerialized(t *testing.T) {
	e := newEnv(t)
	doc := e.seed(t)

	body, _ := json.Marshal(syncRequest{
		Selection: []string{"rect-1"},
		ChartType: chart.TypeLine,
		Data:      chart.ExampleTable,
	})
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Post(e.api.URL+"/v1/documents/"+doc.ID+"/sync", "application/json", bytes.NewReader(body))
			if err != nil {
				t.Error(err)
				return
			}
			resp.Body.Close()
		}()
	}
	wg.Wait()

	stored, err := e.store.Get(context.Background(), doc.ID)
	if err != nil {
		t.Fatal(err)
	}
	// Each sync replaces the artwork of the previous one.
	if n := len(stored.Layers()); n != 2 {
		t.Errorf("stored %d layers, want 2", n)
	}
}

func TestKeyedMutex(t *testing.T) {
	k := newKeyedMutex()

	var active atomic.Int32
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("doc")
			defer unlock()
			if n := active.Add(1); n != 1 {
				t.Errorf("%d holders at once", n)
			}
			active.Add(-1)
		}()
	}
	wg.Wait()

	if n := k.len(); n != 0 {
		t.Errorf("%d keys left, want 0", n)
	}

	a := k.Lock("a")
	b := k.Lock("b")
	if n := k.len(); n != 2 {
		t.Errorf("len = %d, want 2", n)
	}
	a()
	b()
}
