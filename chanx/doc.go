// Package chanx bridges [mpmc.Channel] values and native Go channels.
//
// An mpmc.Channel blocks on a condition variable, so it cannot appear in
// a select statement directly. chanx runs small pump goroutines that move
// values between the two worlds:
//
//   - [Out]: exposes a Channel as a [Stream] with a receive-only Go
//     channel.
//   - [In]: feeds a Go channel into a Channel and shuts it down when the
//     source closes.
//   - [Merge]: fans several Channels into one Stream.
//
// A Stream's channel closes when its sources are shut down and drained or
// when its context is cancelled, whichever comes first. Values a pump had
// already received when the context was cancelled are returned by
// [Stream.Wait] rather than dropped.
package chanx
