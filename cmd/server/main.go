package main

import "kpidash/internal/app/server"

func main() {
	server.Run()
}
