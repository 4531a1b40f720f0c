package utils

import (
	"fmt"
	"net/url"
)

// AvatarURL builds a generated placeholder portrait for accounts created
// without a profile image.
func AvatarURL(displayName string) string {
	return fmt.Sprintf(
		"https://ui-avatars.com/api/?name=%s&background=EF4444&color=fff&size=200",
		url.QueryEscape(displayName),
	)
}
