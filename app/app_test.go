package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/enlistd/api/registrar"
	"github.com/enlistd/api/store"
	"github.com/enlistd/api/users"
)

func testApp(t *testing.T) *App {
	t.Helper()
	conf := &Config{
		Secret:     "test-secret",
		LockWaitMS: 5000,
		Database:   DatabaseConfig{Driver: "sqlite3", Name: ":memory:"},
	}
	db := sqlx.MustConnect("sqlite3", ":memory:")
	db.SetMaxOpenConns(1)
	db.MustExec(store.Schema)
	db.MustExec(`INSERT INTO subject (id) VALUES ('BM101'), ('PH403')`)
	db.MustExec(`INSERT INTO room (name, capacity) VALUES ('AS311', 20), ('CL1', 1)`)
	db.MustExec(`
	  INSERT INTO faculty (number, first_name, last_name)
	  VALUES (1000, 'Ada', 'Lovelace'), (2000, 'Alan', 'Turing')`)

	a := &App{
		DB:             db,
		Config:         conf,
		Registrar:      registrar.New(store.NewSQL(db, "sqlite3")),
		RateStore:      memory.NewStore(),
		jwtIdentityKey: "id",
	}
	num := 10
	a.Protected = func(c *gin.Context) {
		// stand-in for the jwt middleware: an admin linked to
		// student 10
		c.Set(a.jwtIdentityKey, &users.User{
			ID:            1,
			Name:          "registrar",
			IsAdmin:       true,
			StudentNumber: &num,
		})
		c.Next()
	}
	gin.SetMode(gin.TestMode)
	a.Engine = gin.New()
	a.RegisterRoutes(&a.Engine.RouterGroup)
	t.Cleanup(func() { a.Close() })
	return a
}

func do(t *testing.T, a *App, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.ServeHTTP(w, r)
	return w
}

func mustCreateSection(t *testing.T, a *App, id, subject, days, start, end, room string, instructor int) {
	t.Helper()
	body := fmt.Sprintf(
		`{"section_id":%q,"subject_id":%q,"days":%q,"start":%q,"end":%q,"room":%q,"instructor":%d}`,
		id, subject, days, start, end, room, instructor,
	)
	w := do(t, a, "POST", "/sections", body)
	if w.Code != 201 {
		t.Fatalf("could not create section %s: %d %s", id, w.Code, w.Body.String())
	}
}

func mustRegisterStudent(t *testing.T, a *App, number int) {
	t.Helper()
	body := fmt.Sprintf(`{"student_number":%d,"first_name":"first","last_name":"last"}`, number)
	w := do(t, a, "POST", "/students", body)
	if w.Code != 201 {
		t.Fatalf("could not register student %d: %d %s", number, w.Code, w.Body.String())
	}
}

func TestPostSection(t *testing.T) {
	a := testApp(t)
	mustCreateSection(t, a, "A1", "BM101", "MTH", "08:30", "10:00", "AS311", 1000)

	for _, tst := range []struct {
		name string
		body string
		code int
	}{
		{
			name: "duplicate id",
			body: `{"section_id":"A1","subject_id":"PH403","days":"TF","start":"08:30","end":"10:00","room":"CL1","instructor":2000}`,
			code: 409,
		},
		{
			name: "instructor schedule conflict",
			body: `{"section_id":"B2","subject_id":"PH403","days":"MTH","start":"09:00","end":"10:30","room":"CL1","instructor":1000}`,
			code: 409,
		},
		{
			name: "bad days",
			body: `{"section_id":"B2","subject_id":"PH403","days":"XY","start":"09:00","end":"10:30","room":"CL1","instructor":1000}`,
			code: 400,
		},
		{
			name: "end before start",
			body: `{"section_id":"B2","subject_id":"PH403","days":"TF","start":"10:30","end":"09:00","room":"CL1","instructor":1000}`,
			code: 400,
		},
		{
			name: "unknown room",
			body: `{"section_id":"B2","subject_id":"PH403","days":"TF","start":"09:00","end":"10:30","room":"NOPE","instructor":1000}`,
			code: 404,
		},
		{
			name: "ok on another day",
			body: `{"section_id":"B2","subject_id":"PH403","days":"TF","start":"09:00","end":"10:30","room":"CL1","instructor":1000}`,
			code: 201,
		},
	} {
		w := do(t, a, "POST", "/sections", tst.body)
		if w.Code != tst.code {
			t.Errorf("%s: bad status code, got %d, want %d: %s",
				tst.name, w.Code, tst.code, w.Body.String())
		}
	}
}

func TestEnlistFlow(t *testing.T) {
	a := testApp(t)
	mustCreateSection(t, a, "A1", "BM101", "MTH", "08:30", "10:00", "AS311", 1000)
	mustCreateSection(t, a, "A2", "BM101", "TF", "08:30", "10:00", "AS311", 2000)
	mustRegisterStudent(t, a, 10)

	for _, tst := range []struct {
		name string
		body string
		code int
	}{
		{
			name: "enlist",
			body: `{"student_number":10,"section_id":"A1","action":"ENLIST"}`,
			code: 200,
		},
		{
			name: "enlist again",
			body: `{"student_number":10,"section_id":"A1","action":"ENLIST"}`,
			code: 409,
		},
		{
			name: "same subject twice",
			body: `{"student_number":10,"section_id":"A2","action":"enlist"}`,
			code: 409,
		},
		{
			name: "unknown section",
			body: `{"student_number":10,"section_id":"ZZ","action":"ENLIST"}`,
			code: 404,
		},
		{
			name: "unknown action",
			body: `{"student_number":10,"section_id":"A1","action":"DROP"}`,
			code: 400,
		},
		{
			name: "cancel",
			body: `{"student_number":10,"section_id":"A1","action":"CANCEL"}`,
			code: 200,
		},
		{
			name: "cancel when not enrolled",
			body: `{"student_number":10,"section_id":"A1","action":"CANCEL"}`,
			code: 409,
		},
	} {
		w := do(t, a, "POST", "/enlist", tst.body)
		if w.Code != tst.code {
			t.Errorf("%s: bad status code, got %d, want %d: %s",
				tst.name, w.Code, tst.code, w.Body.String())
		}
	}
}

func TestEnlistmentSeatCount(t *testing.T) {
	a := testApp(t)
	mustCreateSection(t, a, "A1", "BM101", "MTH", "08:30", "10:00", "CL1", 1000)
	mustRegisterStudent(t, a, 10)
	mustRegisterStudent(t, a, 11)

	w := do(t, a, "POST", "/enlist", `{"student_number":10,"section_id":"A1","action":"ENLIST"}`)
	if w.Code != 200 {
		t.Fatalf("enlist failed: %d %s", w.Code, w.Body.String())
	}
	// room CL1 seats one student
	w = do(t, a, "POST", "/enlist", `{"student_number":11,"section_id":"A1","action":"ENLIST"}`)
	if w.Code != 409 {
		t.Fatalf("expected 409 for a full section, got %d: %s", w.Code, w.Body.String())
	}

	w = do(t, a, "GET", "/section/A1/enrollment", "")
	if w.Code != 200 {
		t.Fatalf("bad status code: %d", w.Code)
	}
	var enrollment struct {
		Capacity  int `json:"capacity"`
		Enrolled  int `json:"enrolled"`
		Remaining int `json:"remaining"`
	}
	if err := json.NewDecoder(w.Body).Decode(&enrollment); err != nil {
		t.Fatal(err)
	}
	if enrollment.Capacity != 1 || enrollment.Enrolled != 1 || enrollment.Remaining != 0 {
		t.Errorf("bad enrollment response: %+v", enrollment)
	}

	w = do(t, a, "GET", "/student/10/sections", "")
	if w.Code != 200 {
		t.Fatalf("bad status code: %d %s", w.Code, w.Body.String())
	}
	list := make([]map[string]interface{}, 0)
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("student 10 should be enrolled in one section, got %d", len(list))
	}
}

func TestListEndpoints(t *testing.T) {
	a := testApp(t)
	mustCreateSection(t, a, "A1", "BM101", "MTH", "08:30", "10:00", "AS311", 1000)
	mustCreateSection(t, a, "B2", "PH403", "TF", "10:00", "11:30", "CL1", 2000)

	for _, tst := range []struct {
		Path  string
		Code  int
		Len   int
		Query url.Values
	}{
		{Path: "/sections", Len: 2},
		{Path: "/sections", Query: url.Values{"limit": {"1"}}, Len: 1},
		{Path: "/sections", Query: url.Values{"subject": {"PH403"}}, Len: 1},
		{Path: "/sections", Query: url.Values{"limit": {"-1"}}, Code: 400},
		{Path: "/subjects", Len: 2},
		{Path: "/rooms", Len: 2},
		{Path: "/rooms", Query: url.Values{"limit": {"1"}, "offset": {"1"}}, Len: 1},
		{Path: "/instructors", Len: 2},
		{Path: "/instructors", Query: url.Values{"offset": {"bad"}}, Code: 400},
		{Path: "/section/A1", Code: 200, Len: -1},
		{Path: "/section/ZZ", Code: 404},
	} {
		path := tst.Path
		if len(tst.Query) > 0 {
			path += "?" + tst.Query.Encode()
		}
		if tst.Code == 0 {
			tst.Code = 200
		}
		w := do(t, a, "GET", path, "")
		if w.Code != tst.Code {
			t.Errorf("%s: bad status code, got %d, want %d: %s",
				path, w.Code, tst.Code, w.Body.String())
			continue
		}
		if tst.Code >= 300 || tst.Len < 0 {
			continue
		}
		list := make([]map[string]interface{}, 0)
		if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
			t.Errorf("%s: %v", path, err)
			continue
		}
		if len(list) != tst.Len {
			t.Errorf("%s: expected response of length %d, got %d", path, tst.Len, len(list))
		}
	}
}

func TestEnlistForAnotherStudent(t *testing.T) {
	a := testApp(t)
	mustCreateSection(t, a, "A1", "BM101", "MTH", "08:30", "10:00", "AS311", 1000)
	mustRegisterStudent(t, a, 20)

	// swap the identity stub for a non-admin student account
	num := 10
	a.Protected = func(c *gin.Context) {
		c.Set(a.jwtIdentityKey, &users.User{ID: 2, Name: "stud", StudentNumber: &num})
		c.Next()
	}
	a.Engine = gin.New()
	a.RegisterRoutes(&a.Engine.RouterGroup)

	w := do(t, a, "POST", "/enlist", `{"student_number":20,"section_id":"A1","action":"ENLIST"}`)
	if w.Code != 403 {
		t.Errorf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}
