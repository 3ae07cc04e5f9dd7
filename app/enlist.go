package app

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enlistd/api/enlistment"
	"github.com/enlistd/api/registrar"
	"github.com/enlistd/api/store"
	"github.com/enlistd/api/users"
)

// EnlistmentRequest is the body of an enlist or cancel request.
type EnlistmentRequest struct {
	StudentNumber int    `form:"student_number" json:"student_number"`
	SectionID     string `form:"section_id" json:"section_id" binding:"required"`
	Action        string `form:"action" json:"action" binding:"required"`
}

func (a *App) postEnlistment(c *gin.Context) {
	var req EnlistmentRequest
	if err := c.ShouldBind(&req); err != nil {
		senderr(c, err, 400)
		return
	}
	action, err := registrar.ParseAction(req.Action)
	if err != nil {
		senderr(c, err, 400)
		return
	}
	u := selfUser(a.jwtIdentityKey, c)
	if u == nil {
		senderr(c, errors.New("no identity"), 401)
		return
	}
	// Student accounts may omit the number and act for themselves.
	if req.StudentNumber == 0 && u.StudentNumber != nil {
		req.StudentNumber = *u.StudentNumber
	}
	if !u.ActsFor(req.StudentNumber) {
		senderr(c, errors.New("cannot enlist for another student"), 403)
		return
	}

	err = a.Registrar.Perform(c.Request.Context(), req.StudentNumber, req.SectionID, action)
	if err != nil {
		senderr(c, err, enlistmentStatus(err))
		return
	}
	section, err := a.Registrar.Section(c.Request.Context(), req.SectionID)
	if err != nil {
		senderr(c, err, 500)
		return
	}
	c.JSON(200, gin.H{
		"student_number": req.StudentNumber,
		"section":        section,
		"action":         action,
	})
}

func (a *App) getStudentSections(c *gin.Context) {
	num := c.GetInt("student_number")
	u := selfUser(a.jwtIdentityKey, c)
	if u == nil || !u.ActsFor(num) {
		senderr(c, errors.New("cannot view another student's sections"), 403)
		return
	}
	student, err := a.Registrar.Student(c.Request.Context(), num)
	if err != nil {
		senderr(c, err, enlistmentStatus(err))
		return
	}
	sections := make([]*enlistment.Section, 0, len(student.Sections))
	for _, s := range student.Sections {
		sections = append(sections, s)
	}
	c.JSON(200, sections)
}

func (a *App) postStudent(c *gin.Context) {
	var req struct {
		StudentNumber int    `form:"student_number" json:"student_number"`
		FirstName     string `form:"first_name" json:"first_name"`
		LastName      string `form:"last_name" json:"last_name"`
	}
	if err := c.ShouldBind(&req); err != nil {
		senderr(c, err, 400)
		return
	}
	student, err := a.Registrar.RegisterStudent(
		c.Request.Context(),
		req.StudentNumber,
		req.FirstName,
		req.LastName,
	)
	if err != nil {
		senderr(c, err, enlistmentStatus(err))
		return
	}
	c.JSON(201, student)
}

func selfUser(key string, c *gin.Context) *users.User {
	identity, ok := c.Get(key)
	if !ok {
		return nil
	}
	u, ok := identity.(*users.User)
	if !ok {
		return nil
	}
	return u
}

// enlistmentStatus maps the registrar's error taxonomy onto http
// status codes. Rule violations and losing races are conflicts, not
// server errors.
func enlistmentStatus(err error) int {
	var (
		validation *enlistment.ValidationError
		duplicate  *enlistment.DuplicateSectionError
		instructor *enlistment.InstructorConflictError
		overlap    *enlistment.SectionConflictError
		taken      *enlistment.SubjectTakenError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &duplicate),
		errors.As(err, &instructor),
		errors.As(err, &overlap),
		errors.As(err, &taken),
		errors.Is(err, enlistment.ErrCapacityExceeded),
		errors.Is(err, enlistment.ErrNotEnrolled),
		errors.Is(err, enlistment.ErrAlreadyEnrolled),
		errors.Is(err, enlistment.ErrNoSeatToRelease),
		errors.Is(err, store.ErrStale):
		return http.StatusConflict
	case errors.Is(err, registrar.ErrTimeout):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
