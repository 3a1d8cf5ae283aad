// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/vcbackup/cmd/vcbackup/cmd"
)

func main() {
	cmd.Execute()
}
