package main

import (
	"net/http"
	"time"
)

const timeoutBody = `<!doctype html>
<html lang="en">
<head><title>The Daily Take</title></head>
<body>
<h1>Taking too long</h1>
<p>Today's game did not load in time. Your progress is kept, <a href="/play">try again</a>.</p>
</body>
</html>
`

// timeoutHandler answers 503 Service Unavailable when h misses the deadline. The deadline stays below the server's
// write timeout so that the response still reaches the player.
func timeoutHandler(h http.Handler, writeTimeout time.Duration) http.Handler {
	return http.TimeoutHandler(h, writeTimeout-500*time.Millisecond, timeoutBody) //nolint:mnd // 500ms margin
}
