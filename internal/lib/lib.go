// Package lib acts as a library for modules that do not fit strictly
// into the other layers.
//
// It contains background job processing (Redis/asynq) and the email
// client integration (Resend).
package lib
