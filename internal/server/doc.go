/*
Package server exposes the comparison engine over HTTP.

# Routes

	GET  /health                  liveness probe, returns "OK"
	GET  /                        HTML input form
	POST /                        form submission, HTML result page
	POST /compare                 same as POST /
	POST /download_pdf            form submission, PDF report
	POST /api/compare             JSON inputs, JSON result (saved when a store is configured)
	GET  /api/records             saved results, newest first (?limit=N)
	GET  /api/records/{id}        one saved result
	GET  /api/records/{id}/pdf    PDF report for a saved result

Form amounts are parsed leniently: separators and the naira sign are
ignored and anything unparseable counts as zero. JSON amounts must be
numbers or numeric strings.

# Middleware

Every route except /health is wrapped with request logging (log/slog).
The whole mux sits behind CORS and a per-client token bucket rate limiter.
*/
package server
