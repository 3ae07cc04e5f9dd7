package app

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes will setup all the app routes
func (a *App) RegisterRoutes(g *gin.RouterGroup) {
	// Catalog
	lists := g.Group("/", listParamsMiddleware)
	lists.GET("/sections", a.listSections)
	lists.GET("/subjects", a.listSubjects)
	lists.GET("/rooms", a.listRooms)
	lists.GET("/instructors", a.listInstructors)

	a.sectionGroup(g)

	// Enlistment
	g.POST("/enlist", enlistRateLimit(a.RateStore), a.Protected, a.postEnlistment)
	g.GET("/student/:num/sections", a.Protected, studentNumParamMiddleware, a.getStudentSections)
	g.POST("/students", a.Protected, a.postStudent)

	// Accounts
	g.POST("/user", createUserRateLimit(a.RateStore), a.PostUser)
	g.GET("/user/:id", a.Protected, a.getUser)
	g.DELETE("/user/:id", a.Protected, idParamMiddleware, a.deleteUser)
	g.GET("/unauthorized", a.Protected, func(c *gin.Context) { c.Status(200) }) // for testing should always be unauthorized
}

func (a *App) sectionGroup(g *gin.RouterGroup) *gin.RouterGroup {
	g.POST("/sections", a.Protected, a.postSection)
	sec := g.Group("/section")
	sec.GET("/:id", a.getSection)
	sec.GET("/:id/enrollment", a.getSectionEnrollment)
	return sec
}

func studentNumParamMiddleware(c *gin.Context) {
	raw, ok := c.Params.Get("num")
	if !ok {
		c.AbortWithStatusJSON(400, &Error{
			Msg:    "no student number given",
			Status: 400,
		})
		return
	}
	num, err := strconv.Atoi(raw)
	if err != nil {
		c.AbortWithStatusJSON(400, &Error{Msg: "student number is not a number"})
		return
	}
	c.Set("student_number", num)
	c.Next()
}

func idParamMiddleware(c *gin.Context) {
	idStr, ok := c.Params.Get("id")
	if !ok {
		c.AbortWithStatusJSON(400, &Error{
			Msg:    "no id given",
			Status: 400,
		})
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		c.AbortWithStatusJSON(400, &Error{Msg: "id is not a number"})
		return
	}
	c.Set("id", id)
	c.Next()
}

func senderr(c *gin.Context, e error, status int) {
	c.AbortWithStatusJSON(
		status,
		&Error{
			Msg:    strings.Replace(e.Error(), "\"", "'", -1),
			Status: status,
		},
	)
}
