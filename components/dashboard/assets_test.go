package dashboard

import (
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAssetsExposesEmbeddedFiles(t *testing.T) {
	var sub fs.FS = Assets()
	for _, name := range []string{"storelens.css", "storelens.js"} {
		file, err := sub.Open(name)
		if err != nil {
			t.Fatalf("opening %s: %v", name, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("expected %s to have content", name)
		}
	}
}

func TestAssetsFSServesThroughNetHTTP(t *testing.T) {
	file, err := AssetsFS().Open("/storelens.css")
	if err != nil {
		t.Fatalf("opening stylesheet: %v", err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		t.Fatalf("stat stylesheet: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected stylesheet to have content")
	}
}

func TestAssetsHandlerServesWithPrefix(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/assets/storelens.js", nil)
	AssetsHandler("/assets/").ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "__STORELENS_STATE__") {
		t.Fatalf("expected client script body, got %q", rec.Body.String()[:40])
	}
}
