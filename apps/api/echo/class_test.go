package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classforge/classforge/core/class"
	testutil "github.com/classforge/classforge/tests"
)

func Test_classApi_update(t *testing.T) {
	srv, db := setupServer(t)
	cls := testutil.CreateClass(t, db, "Intro to Algorithms", "CS101")
	id := cls.String("id")

	tests := []httpTest{
		{
			name:     "valid patch",
			method:   http.MethodPatch,
			path:     "/v1/classes/" + id,
			body:     marshalBody(t, map[string]interface{}{"title": "Advanced Algorithms", "code": "cs201"}),
			wantCode: http.StatusOK,
		},
		{
			name:     "title too short",
			method:   http.MethodPatch,
			path:     "/v1/classes/" + id,
			body:     marshalBody(t, map[string]interface{}{"title": "ab"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "department outside enumeration",
			method:   http.MethodPatch,
			path:     "/v1/classes/" + id,
			body:     marshalBody(t, map[string]interface{}{"department": "Alchemy"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown class",
			method:   http.MethodPatch,
			path:     "/v1/classes/does-not-exist",
			body:     marshalBody(t, map[string]interface{}{"title": "Anything goes"}),
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			srv.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}

	// the successful patch landed; the code was upper-cased
	var got class.Class
	req, rec := newRequest(http.MethodGet, "/v1/classes/"+id)
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &got)
	assert.Equal(t, "Advanced Algorithms", got.Title)
	assert.Equal(t, "CS201", got.Code)
}

func Test_classApi_update_validationErrorBody(t *testing.T) {
	srv, db := setupServer(t)
	cls := testutil.CreateClass(t, db, "Intro to Algorithms", "CS101")

	req, rec := newRequest(http.MethodPatch, "/v1/classes/"+cls.String("id"),
		marshalBody(t, map[string]interface{}{"title": "ab", "status": "archived"}))
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// one inline message per offending field
	var fldErrs map[string]string
	decodeBody(t, rec, &fldErrs)
	assert.Contains(t, fldErrs, "title")
	assert.Contains(t, fldErrs, "status")
}

func Test_classApi_queryDepartments(t *testing.T) {
	srv, _ := setupServer(t)

	req, rec := newRequest(http.MethodGet, "/v1/classes/departments")
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var depts []class.Department
	decodeBody(t, rec, &depts)
	assert.Equal(t, class.Departments, depts)
}
