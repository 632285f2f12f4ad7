package main

import "github.com/frahmantamala/notice-management/cmd"

func main() {
	cmd.Execute()
}
