// Copyright © 2018 One Concern

// Package core gives tracked files a revision history made of the backups an editor writes on save.
//
// The directory listing is the only database: every operation lists the backup
// directory again, tags are derived from the backup names, and the recency order
// is the order of modification times. Nothing is cached between calls.
//
// Change-set operations (DeleteAll, RenameAll) are not atomic: they are best-effort
// and resumable, and report what they could not do as a *model.PartialOperationFailure.
package core
