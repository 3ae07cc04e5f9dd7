package app

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // need postgres dialect
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // need sqlite3 dialect
	"github.com/gin-gonic/gin"

	"github.com/enlistd/api/enlistment"
)

func listParamsMiddleware(c *gin.Context) {
	for _, key := range []string{"limit", "offset"} {
		query, ok := c.GetQuery(key)
		if !ok || query == "" {
			c.Set(key, nil)
			continue
		}
		u, err := strconv.ParseUint(query, 10, 32)
		if err != nil {
			c.Set(key, nil)
			c.AbortWithStatusJSON(400, &Error{fmt.Sprintf("invalid %s", key), 400})
			return
		}
		c.Set(key, uint(u))
	}
	c.Next()
}

func (a *App) dialect() goqu.DialectWrapper {
	return goqu.Dialect(a.Config.Database.Driver)
}

func pageSelect(c *gin.Context, stmt *goqu.SelectDataset) *goqu.SelectDataset {
	if limit, ok := c.Get("limit"); ok && limit != nil {
		stmt = stmt.Limit(limit.(uint))
	}
	if offset, ok := c.Get("offset"); ok && offset != nil {
		stmt = stmt.Offset(offset.(uint))
	}
	return stmt
}

// sectionListing is the flat catalog row sent on list endpoints.
type sectionListing struct {
	ID         string               `db:"id" json:"id"`
	SubjectID  string               `db:"subject_id" json:"subject_id"`
	Days       enlistment.Days      `db:"days" json:"days"`
	Start      enlistment.TimeOfDay `db:"start_time" json:"start"`
	End        enlistment.TimeOfDay `db:"end_time" json:"end"`
	Room       string               `db:"room" json:"room"`
	Instructor int                  `db:"instructor" json:"instructor"`
	Capacity   int                  `db:"capacity" json:"capacity"`
	Enrolled   int                  `db:"enrolled" json:"enrolled"`
}

// listSections lists the catalog.
// Depends on "limit" and "offset" being set from middleware.
func (a *App) listSections(c *gin.Context) {
	stmt := a.dialect().From("section").Select(
		"id", "subject_id", "days", "start_time",
		"end_time", "room", "instructor", "capacity", "enrolled",
	).Order(goqu.I("id").Asc())
	if subject, ok := c.GetQuery("subject"); ok {
		stmt = stmt.Where(goqu.Ex{"subject_id": subject})
	}
	query, args, err := pageSelect(c, stmt).ToSQL()
	if err != nil {
		senderr(c, err, 500)
		return
	}
	list := make([]sectionListing, 0, 32)
	if err = a.DB.Select(&list, query, args...); err != nil && err != sql.ErrNoRows {
		senderr(c, err, 500)
		return
	}
	c.JSON(200, list)
}

func (a *App) listSubjects(c *gin.Context) {
	type response struct {
		ID          string `db:"id" json:"id"`
		Description string `db:"description" json:"description,omitempty"`
	}
	resp := make([]response, 0, 16)
	a.list(c, "subject", &resp, "id", "description")
}

func (a *App) listRooms(c *gin.Context) {
	type response struct {
		Name     string `db:"name" json:"name"`
		Capacity int    `db:"capacity" json:"capacity"`
	}
	resp := make([]response, 0, 16)
	a.list(c, "room", &resp, "name", "capacity")
}

func (a *App) listInstructors(c *gin.Context) {
	type response struct {
		Number    int    `db:"number" json:"number"`
		FirstName string `db:"first_name" json:"first_name"`
		LastName  string `db:"last_name" json:"last_name"`
	}
	resp := make([]response, 0, 16)
	a.list(c, "faculty", &resp, "number", "first_name", "last_name")
}

func (a *App) list(c *gin.Context, table string, dest interface{}, cols ...string) {
	selection := make([]interface{}, len(cols))
	for i, col := range cols {
		selection[i] = col
	}
	stmt := a.dialect().From(table).Select(selection...)
	query, args, err := pageSelect(c, stmt).ToSQL()
	if err != nil {
		senderr(c, err, 500)
		return
	}
	if err = a.DB.Select(dest, query, args...); err != nil && err != sql.ErrNoRows {
		senderr(c, err, 500)
		return
	}
	c.JSON(200, dest)
}
