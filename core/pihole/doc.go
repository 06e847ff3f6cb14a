// Package pihole is a minimal client for the Pi-hole v6 REST API, covering
// exactly the surface the reconciler needs: the configuration document, the
// four managed entity collections, and the gravity action.
//
// # Sessions
//
// Pi-hole authenticates with a password exchanged for a short-lived session
// id. The client acquires the session lazily on the first call and sends it
// in the X-FTL-SID header on every request. Close releases the session;
// expired sessions surface as APIError values and are never retried here.
//
// # Entities
//
// List, Domain, Group and ClientEntry mirror the API's JSON objects
// restricted to the fields the reconciler manages. Each entity knows its
// natural key and how to compare itself against another version: group
// assignments compare as sets with an undeclared (nil) slice meaning the
// default group, and the tri-state enabled flag treats absent as true.
//
// # Errors
//
// Non-2xx responses decode Pi-hole's error envelope into *APIError. The
// caller decides what a failure means; this package never retries.
package pihole
