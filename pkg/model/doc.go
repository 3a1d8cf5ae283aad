// Copyright © 2018 One Concern

// Package model describes the base objects manipulated by vcbackup.
//
// The object model for vcbackup is composed of:
//
//  Tracked files:
//    The current, user-edited version of a file. There is no repository: a tracked file
//    has a history as soon as the editor has written a backup of it.
//
//  Backups:
//    A copy of a prior content of a tracked file, written by the editor on save.
//    Numbered backups are named "name.~N~", the single unnumbered backup is named "name~".
//
//  Tags:
//    A tag identifies a revision relative to the others: "current" (the tracked file),
//    "previous" (the unnumbered backup) or the number of a numbered backup.
//
// Tags are computed from the filesystem on every query: nothing is persisted besides
// the backup files themselves.
package model
