package app

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/ulule/limiter/v3"
	ginlimit "github.com/ulule/limiter/v3/drivers/middleware/gin"

	"github.com/enlistd/api/users"
)

func authorize(r *http.Request, u *users.User) bool {
	path := r.URL.Path
	if r.Method == "POST" || r.Method == "DELETE" {
		if strings.HasSuffix(path, fmt.Sprintf("/user/%d", u.ID)) ||
			strings.HasSuffix(path, fmt.Sprintf("/user/%d/", u.ID)) {
			return true
		} else if strings.HasSuffix(path, "/user") {
			return u.IsAdmin
		}
	}
	switch {
	case strings.HasSuffix(path, "/sections") && r.Method == "POST":
		// Catalog management is registrar staff only.
		return u.IsAdmin
	case strings.HasSuffix(path, "/students") && r.Method == "POST":
		return u.IsAdmin
	case strings.HasSuffix(path, "/enlist"):
		// Any account may reach the enlistment handler, which then
		// checks that the account acts for the student in question.
		return u.IsAdmin || u.StudentNumber != nil
	case strings.HasSuffix(path, "/unauthorized"): // for testing
		return false
	}
	return r.Method == "GET"
}

func (a *App) getUser(c *gin.Context) {
	var (
		id  int
		err error
	)
	rawid, ok := c.Params.Get("id")
	if !ok {
		c.AbortWithStatusJSON(400, &Error{
			Msg:    "no id given",
			Status: 400,
		})
		return
	}

	// If the url parameter was self, get the
	// ID of the current user.
	if rawid == "self" {
		if u := selfUser(a.jwtIdentityKey, c); u != nil {
			id = u.ID
		} else {
			err = &Error{Msg: "could not get user: no identity"}
		}
	} else {
		// If not self, parse the url parameter
		id, err = strconv.Atoi(rawid)
		if err != nil {
			err = &Error{Msg: "id is not a number"}
		}
	}
	if err != nil {
		c.AbortWithStatusJSON(400, err)
		return
	}

	u, err := a.GetUser(users.User{ID: id})
	if err != nil {
		senderr(c, users.ErrUserNotFound, 404)
		return
	}
	c.JSON(200, u)
}

// PostUser handles user creation
func (a *App) PostUser(c *gin.Context) {
	u, err := a.createUser(c)
	if err != nil {
		log.Printf("%T %v\n", err, err)
	}
	switch e := err.(type) {
	case *pq.Error:
		if e.Code == "23505" {
			c.AbortWithStatusJSON(400, &Error{"Duplicate username or email", 400})
		} else {
			c.AbortWithStatusJSON(500, &Error{e.Detail, 500})
		}
		return
	case *Error:
		c.AbortWithStatusJSON(e.Status, e)
		return
	default:
		break
	}
	switch err {
	case nil:
		c.JSON(201, u)
		return
	case users.ErrInvalidUser:
		c.AbortWithStatusJSON(400, &Error{Msg: "must give a username or email", Status: 400})
	default:
		c.AbortWithStatusJSON(500, gin.H{"error": err})
	}
}

func (a *App) createUser(c *gin.Context) (*users.User, error) {
	type user struct {
		users.User
		Password string
	}
	u := user{}
	err := c.BindJSON(&u)
	if err != nil {
		return nil, &Error{"could not read request body", 400}
	}
	// Self sign-up never grants staff rights.
	u.IsAdmin = false
	u.CreatedAt = time.Time{} // this is taken care of by postgres
	u.ID = 0                  // database handles this
	if u.Password == "" {
		return nil, ErrStatus(400, "no password for new user")
	}
	return a.CreateUser(&u.User, u.Password)
}

func (a *App) deleteUser(c *gin.Context) {
	u := users.User{ID: c.GetInt("id")}
	switch err := users.Delete(a.DB, u); err {
	case nil:
		c.JSON(200, &Msg{
			Msg:    "user successfully deleted",
			Status: 200,
		})
	case users.ErrUserNotFound:
		senderr(c, err, 404)
	default:
		senderr(c, err, 500)
	}
}

func createUserRateLimit(store limiter.Store) gin.HandlerFunc {
	return ginlimit.NewMiddleware(limiter.New(
		store,
		limiter.Rate{
			Period: time.Minute,
			Limit:  5,
		},
	))
}

// enlistRateLimit caps enlistment traffic per client address.
func enlistRateLimit(store limiter.Store) gin.HandlerFunc {
	return ginlimit.NewMiddleware(limiter.New(
		store,
		limiter.Rate{
			Period: time.Minute,
			Limit:  120,
		},
	))
}
