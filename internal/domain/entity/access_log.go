package entity

import "time"

// AccessLog is one audited HTTP request. Written asynchronously by the
// access-log middleware; never blocks or fails the request it describes.
type AccessLog struct {
	ID         string
	UserID     *string
	CompanyID  *string
	RequestID  string
	Method     string
	Path       string
	StatusCode int
	IPAddress  string
	UserAgent  string
	DurationMS int64
	CreatedAt  time.Time
}
