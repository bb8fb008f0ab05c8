// Package services is the client core: the shared application State, the
// View Navigator, the Session Controller and the Prompt Store, written against
// the client.RemoteStore boundary so they can be exercised with a substitute.
//
// Presentation code reads State snapshots and calls into the controller, the
// store and the navigator; it never changes the view on auth events itself.
package services
