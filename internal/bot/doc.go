// Package bot answers chat commands with links to the availability grid.
//
// Messages that start with the command prefix are matched against a fixed command
// table. Unknown commands get the help text; messages without the prefix are ignored.
// Replies go through the Replier interface so the table can be exercised without a
// chat service; the Telegram adapter lives in telegram.go.
package bot
