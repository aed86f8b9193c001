package main

import (
	"github.com/Vanshhsoni/kissan/config"
	"github.com/Vanshhsoni/kissan/routes"
	"github.com/Vanshhsoni/kissan/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	r := routes.SetupRouter()
	r.Run(":8080")
}
