// Package docstore implements ports.DocumentStore.
//
// RESTStore talks to a Firebase Realtime Database style REST endpoint:
// every path is addressed as <base><path>.json and read or written with
// GET, PUT, PATCH and DELETE. Memory keeps the same tree in process for
// local runs and tests, and can be told to fail chosen calls.
package docstore
