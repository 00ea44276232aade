package middleware

// SessionCookie holds the admin session token for browser clients
const SessionCookie = "reservas_token"
