// Package render is the client for the chart rendering service.
//
// # Overview
//
// The service turns a chart configuration into SVG markup. One request is
// made per chart:
//
//	POST {baseURL}/chart/{style}/{chartType}
//	Accept: application/json
//	Content-Type: application/json
//
//	{"data": [[...]], "signalSettings": {...}, "width": 300, "height": 200}
//
// and the service answers with either {"svg": "<svg ...>"} or
// {"error": "message"}.
//
// # Errors
//
// [Client.FetchChart] reports failures as *errors.Error values:
//
//   - NETWORK_ERROR: the request did not complete or the status was not
//     200; the user message is the HTTP status text
//   - RENDER_ERROR: the service answered but could not draw the chart; the
//     user message is exactly the service's error string
//   - CANCELLED: the context ended before a response arrived
//
// Requests are never retried; the user decides whether to try again.
//
// # Caching
//
// With [WithCache], successful responses are stored under a hash of the
// request (see cache.Keyer), so re-running a sync with unchanged data and size
// skips the network. Failures are never cached.
package render
