package main

import "web-ui-harness/internal/bootstrap"

func main() {
	bootstrap.NewApp().Run()
}
