// Copyright © 2018 One Concern

//go:build unix

package core

import (
	"os"
	"syscall"
)

func fileUID(info os.FileInfo) (uint32, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return 0, false
	}
	return st.Uid, true
}
