package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// identity token on outbound requests.
const AccessTokenHeaderName = "access_token"

// AdminKeyHeaderName carries the admin security key for privileged calls.
const AdminKeyHeaderName = "admin_key"
