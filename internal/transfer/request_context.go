package transfer

// RequestContext carries the authenticated identity through every service
// call. Tenancy is never read from ambient session state inside services;
// the middleware builds one of these per request and handlers pass it down.
type RequestContext struct {
	UserID int64
	Role   string
}
