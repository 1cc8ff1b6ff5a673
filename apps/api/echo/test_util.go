package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/core/assignment"
	"github.com/classforge/classforge/core/class"
	"github.com/classforge/classforge/core/submission"
	logsvc "github.com/classforge/classforge/services/logger"
	inmemdb "github.com/classforge/classforge/storage/database/inmem"
	testutil "github.com/classforge/classforge/tests"
)

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
}

func setupServer(t *testing.T) (Server, *inmemdb.DB) {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setupServer() failed: %v", err)
	}
	logger := logsvc.NewConsoleLogger(log.New(io.Discard, "", 0))
	validate, translator := testutil.NewValidator()

	conf := &core.Config{Env: "TEST", TestMode: true}
	srv := NewServer(&Options{
		Conf:           conf,
		Logger:         logger,
		DisableReqLogs: true,
		ClassSvc:       class.NewService(db, logger, validate, translator),
		AssignmentSvc:  assignment.NewService(db, logger, validate, translator),
		SubmissionSvc:  submission.NewService(db, logger, validate, translator),
	})
	return srv, db
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marshalBody(t *testing.T, v interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshalBody() failed: %v", err)
	}
	return data
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decodeBody() failed: %v (body: %s)", err, rec.Body.String())
	}
}
