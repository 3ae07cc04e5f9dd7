package app

import (
	"log"
	"time"

	ginjwt "github.com/appleboy/gin-jwt/v2"
	"github.com/gin-gonic/gin"

	"github.com/enlistd/api/users"
)

// NewJWTAuth creates the default jwt auth middleware
func (a *App) NewJWTAuth() (*ginjwt.GinJWTMiddleware, error) {
	if a.jwtIdentityKey == "" {
		a.jwtIdentityKey = "id"
	}
	middleware, err := ginjwt.New(&ginjwt.GinJWTMiddleware{
		IdentityKey: a.jwtIdentityKey,
		Key:         []byte(a.Config.Secret),
		Timeout:     time.Hour,
		MaxRefresh:  time.Hour * 12,

		TokenLookup:   "header: Authorization, query: token, cookie: jwt",
		TokenHeadName: "Bearer",
		SendCookie:    true,

		Authenticator:   a.authenticate,
		PayloadFunc:     a.jwtPayload,
		Authorizator:    a.authorize,
		IdentityHandler: a.identityHandler,
		Unauthorized: func(c *gin.Context, code int, message string) {
			c.JSON(code, &Error{
				Status: code,
				Msg:    message,
			})
		},
	})
	if err != nil {
		return nil, err
	}
	return middleware, nil
}

func (a *App) authenticate(c *gin.Context) (interface{}, error) {
	type login struct {
		Username string `form:"username" json:"username" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}
	var l login
	err := c.ShouldBind(&l)
	if err != nil {
		return nil, ginjwt.ErrMissingLoginValues
	}
	u, err := users.GetUserByName(a.DB, l.Username)
	if err != nil {
		return nil, ginjwt.ErrFailedAuthentication
	}
	if u.PasswordOK(l.Password) {
		return u, nil
	}
	return nil, ginjwt.ErrFailedAuthentication
}

func (a *App) authorize(data interface{}, c *gin.Context) bool {
	u, ok := data.(*users.User)
	if !ok {
		return false
	}
	return authorize(c.Request, u)
}

func (a *App) jwtPayload(data interface{}) ginjwt.MapClaims {
	u, ok := data.(*users.User)
	if !ok {
		return ginjwt.MapClaims{}
	}
	claims := ginjwt.MapClaims{
		a.jwtIdentityKey: u.ID,
		"name":           u.Name,
		"email":          u.Email,
		"is_admin":       u.IsAdmin,
	}
	if u.StudentNumber != nil {
		claims["student_number"] = *u.StudentNumber
	}
	return claims
}

func (a *App) identityHandler(c *gin.Context) interface{} {
	var (
		name   string
		admin  bool
		claims = ginjwt.ExtractClaims(c)
	)
	val, ok := claims["name"]
	if ok {
		name = val.(string)
	}
	val, ok = claims["is_admin"]
	if ok {
		admin = val.(bool)
	}
	id, ok := claims[a.jwtIdentityKey]
	if !ok {
		log.Println("claims should have the identity key")
		return nil // should not happen
	}
	u := &users.User{
		ID:      int(id.(float64)),
		Name:    name,
		IsAdmin: admin,
	}
	if val, ok = claims["student_number"]; ok {
		number := int(val.(float64))
		u.StudentNumber = &number
	}
	return u
}
