// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation through the X-API-Key header (or api_key query
//     parameter). Swagger and metrics routes are registered before it and stay public.
//   - rayid: tags every request with a ray ID, stored in locals under "ray_id" and
//     echoed in the X-Ray-ID response header. logger.WithRayID picks it up.
package middleware
