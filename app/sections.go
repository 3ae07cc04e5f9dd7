package app

import (
	"github.com/gin-gonic/gin"

	"github.com/enlistd/api/registrar"
)

func (a *App) postSection(c *gin.Context) {
	var p registrar.CreateSection
	if err := c.ShouldBind(&p); err != nil {
		senderr(c, err, 400)
		return
	}
	section, err := a.Registrar.CreateSection(c.Request.Context(), p)
	if err != nil {
		senderr(c, err, enlistmentStatus(err))
		return
	}
	c.JSON(201, section)
}

func (a *App) getSection(c *gin.Context) {
	id, ok := c.Params.Get("id")
	if !ok {
		c.AbortWithStatusJSON(400, &Error{"no section id given", 400})
		return
	}
	section, err := a.Registrar.Section(c.Request.Context(), id)
	if err != nil {
		senderr(c, err, enlistmentStatus(err))
		return
	}
	c.JSON(200, section)
}

func (a *App) getSectionEnrollment(c *gin.Context) {
	id, ok := c.Params.Get("id")
	if !ok {
		c.AbortWithStatusJSON(400, &Error{"no section id given", 400})
		return
	}
	section, err := a.Registrar.Section(c.Request.Context(), id)
	if err != nil {
		senderr(c, err, enlistmentStatus(err))
		return
	}
	c.JSON(200, gin.H{
		"section_id": section.ID,
		"capacity":   section.Capacity,
		"enrolled":   section.Enrolled,
		"remaining":  section.Remaining(),
	})
}
