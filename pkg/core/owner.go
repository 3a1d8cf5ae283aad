// Copyright © 2018 One Concern

package core

import (
	"os"
	"os/user"
	"strconv"
	"sync"
)

// ownerCache resolves and memoizes user names for the duration of one listing
type ownerCache struct {
	mx    sync.Mutex
	names map[uint32]string
}

func newOwnerCache() *ownerCache {
	return &ownerCache{names: make(map[uint32]string)}
}

func (c *ownerCache) ownerOf(info os.FileInfo) string {
	uid, ok := fileUID(info)
	if !ok {
		return ""
	}

	c.mx.Lock()
	defer c.mx.Unlock()

	if name, ok := c.names[uid]; ok {
		return name
	}
	id := strconv.FormatUint(uint64(uid), 10)
	name := id
	if u, err := user.LookupId(id); err == nil {
		name = u.Username
	}
	c.names[uid] = name
	return name
}
