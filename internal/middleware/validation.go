package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Input length limits. Channel ids are 24 chars in practice but the API
// accepts anything UC-prefixed; run references carry a channel id plus a
// compact timestamp and extension.
const (
	MaxChannelInputLen = 200
	MaxChannelIDLen    = 32
	MaxRunRefLen       = 64
)

var (
	// channelIDRe matches YouTube channel IDs: UC prefix, alphanumeric, dash, underscore.
	channelIDRe = regexp.MustCompile(`^UC[A-Za-z0-9_-]+$`)
	// runRefRe matches store references: {channel_id}_{timestamp}.json
	runRefRe = regexp.MustCompile(`^[A-Za-z0-9_-]+_[0-9]{8}T[0-9]{6}Z\.json$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateChannelInput checks a raw channel id / handle / URL from the
// analyze or resolve forms. Returns the trimmed input and an error message.
func ValidateChannelInput(input string) (string, string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", "channel is required"
	}
	if len(input) > MaxChannelInputLen {
		return "", "channel input is too long"
	}
	if strings.ContainsAny(input, "\r\n\x00") {
		return "", "channel input contains invalid characters"
	}
	return input, ""
}

// ValidateChannelID checks that a resolved channel ID is well-formed.
func ValidateChannelID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "channelId is required"
	}
	if len(id) > MaxChannelIDLen {
		return "", "channelId must be at most 32 characters"
	}
	if !channelIDRe.MatchString(id) {
		return "", "channelId must start with UC and contain only letters, digits, - and _"
	}
	return id, ""
}

// ValidateRunRef checks the shape of a run reference before it hits the
// store. The store sanitizes again; this just rejects junk early with a
// clear message.
func ValidateRunRef(ref string) (string, string) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "run reference is required"
	}
	if len(ref) > MaxRunRefLen {
		return "", "run reference is too long"
	}
	if !runRefRe.MatchString(ref) {
		return "", "run reference is malformed"
	}
	return ref, ""
}
