// Copyright © 2018 One Concern

//go:build !unix

package core

import "os"

func fileUID(_ os.FileInfo) (uint32, bool) {
	return 0, false
}
