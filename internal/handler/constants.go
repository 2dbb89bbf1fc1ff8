package handler

// Route constants shared by handlers and the router.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteAdmin is the admin dashboard route.
	RouteAdmin = "/admin"
)
