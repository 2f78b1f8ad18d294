package common

// UserIDHeaderName carries the caller identity for profile requests when the
// body does not name one. gRPC metadata uses the lower-cased form.
const UserIDHeaderName = "X-User-Id"

// StartingBalance is credited to every newly registered account.
const StartingBalance int64 = 1000
