package main

import (
	"fmt"
	"log"

	// database drivers
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/gin-gonic/gin"
	"github.com/harrybrwn/config"

	"github.com/enlistd/api/app"
	"github.com/enlistd/api/store"
)

func main() {
	var conf = &app.Config{}
	config.SetFilename("api.yml")
	config.SetType("yml")
	config.AddPath(".")
	config.SetConfig(conf)
	if err := config.ReadConfigFile(); err != nil {
		log.Println("Warning:", err)
	}
	if err := conf.Init(); err != nil {
		log.Fatal(err)
	}

	a, err := app.New(conf)
	if err != nil {
		log.Fatal("Could not open db: ", err)
	}
	defer a.Close()

	// tables are all CREATE IF NOT EXISTS
	a.DB.MustExec(store.Schema)
	a.DB.MustExec(store.UserSchema(conf.Database.Driver))

	gin.SetMode(config.GetString("mode"))
	a.Engine = gin.New()
	a.Engine.Use(gin.Recovery(), gin.LoggerWithConfig(app.LoggerConfig))
	a.Engine.NoRoute(func(c *gin.Context) {
		c.JSON(404, map[string]interface{}{
			"error":  "no route for " + c.Request.URL.Path,
			"status": 404,
		})
	})

	auth, err := a.NewJWTAuth()
	if err != nil {
		log.Fatal(err)
	}
	a.Protected = auth.MiddlewareFunc()
	a.Engine.POST("/login", auth.LoginHandler)
	a.Engine.GET("/logout", auth.LogoutHandler)
	a.Engine.GET("/refresh", auth.RefreshHandler)

	a.RegisterRoutes(&a.Engine.RouterGroup)

	addr := conf.Address()
	fmt.Printf("\n\nRunning on \x1b[32;4mhttp://%s\x1b[0m\n", addr)

	if err := a.Engine.Run(addr); err != nil {
		log.Fatal(err)
	}
}
