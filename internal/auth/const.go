package auth

import "time"

type SessionKey string

const (
	SessionKeyUserData           SessionKey = "user_data"
	SessionKeyTokenExpiry        SessionKey = "token_expiry"
	SessionKeyRedirectAfterLogin SessionKey = "redirect_after_login"
	SessionKeyPendingLogin       SessionKey = "pending_login"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// PendingLoginTTL bounds how long an authorization request may take to come back.
const PendingLoginTTL = 10 * time.Minute
