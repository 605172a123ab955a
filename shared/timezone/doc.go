// Package timezone pins every business date to the store timezone.
//
// Bookings, requests and BIDs all belong to a calendar day, and that day is
// the one on the venue's wall clock, not the server's. The location comes from
// APP_TIMEZONE (an IANA name such as "Asia/Jakarta") and is loaded when the
// package is imported. UTC is used when it is missing or unknown.
//
//	today := timezone.Today()
//	day, err := timezone.ParseDay("2024-01-10")
//	label := timezone.Format(booking.StartsAt, constant.DateFormat)
package timezone
