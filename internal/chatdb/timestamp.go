package chatdb

import "time"

// AppleEpochOffset is the number of seconds between the Unix epoch and
// Apple's reference date (2001-01-01T00:00:00Z). chat.db stores message
// timestamps as nanoseconds since the Apple epoch.
const AppleEpochOffset int64 = 978307200

// ToAppleTime converts a Unix timestamp (seconds) to an Apple
// nanosecond timestamp.
func ToAppleTime(unixSeconds int64) int64 {
	return (unixSeconds - AppleEpochOffset) * 1_000_000_000
}

// ToAppleTimeNano converts a time to an Apple nanosecond timestamp,
// keeping sub-second precision. Query bounds must use this form: a day
// range ends at 23:59:59.999 and truncating to seconds would drop
// messages from the final fraction of the day.
func ToAppleTimeNano(t time.Time) int64 {
	return t.UnixNano() - AppleEpochOffset*1_000_000_000
}

// FromAppleTime converts an Apple nanosecond timestamp to a Unix
// timestamp (seconds). Exact inverse of ToAppleTime for whole-second
// values; sub-second precision is truncated.
func FromAppleTime(appleNanos int64) int64 {
	return appleNanos/1_000_000_000 + AppleEpochOffset
}
