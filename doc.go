/*
Package vcbackup provides CLI tooling to browse the backups editors leave behind.

The primary goal of vcbackup is to expose the numbered and unnumbered backup
files of a tracked file as a revision history: list, diff, navigate, restore,
rename or delete revisions without any repository.
*/
package vcbackup
