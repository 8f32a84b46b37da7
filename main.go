package main

import "github.com/devicelab-dev/appium-healer/pkg/cli"

func main() {
	cli.Execute()
}
