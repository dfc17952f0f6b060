package kvstore

// Durable storage keys shared by the simulator and the order store.
// Every value is JSON except KeyIsLoggedIn, which is the literal "true"
// or absent.
const (
	KeyOrders          = "orders"
	KeyUserInfo        = "userInfo"
	KeyRegisteredUsers = "registeredUsers"
	KeyIsLoggedIn      = "isLoggedIn"
	KeySessionToken    = "sessionToken"
)
