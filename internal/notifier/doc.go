// Package notifier posts weekly court availability announcements.
//
// An announcement carries the week's date range and the links to the grid page and
// image. It can be posted to Twitter or printed in dry-run mode.
package notifier
