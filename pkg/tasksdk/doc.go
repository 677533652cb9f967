// Package tasksdk is a Go client for the TaskTrack API. It covers the
// unauthenticated surface (register, password grant, health) through
// SDKClient, and the authenticated surface (userinfo, todos) through
// Session.
//
// The wire types in this package are shared with the server handlers so
// both sides agree on the JSON shapes.
package tasksdk
