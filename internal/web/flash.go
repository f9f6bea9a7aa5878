package web

import "github.com/gin-gonic/gin"

const flashCookie = "afisha_flash"

// SetFlash stores a one-shot status message in a short-lived cookie; the
// next rendered page consumes it.
func SetFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, message, 60, "/", "", false, true)
}

// TakeFlash returns the pending flash message, if any, and clears it.
func TakeFlash(c *gin.Context) string {
	message, err := c.Cookie(flashCookie)
	if err != nil {
		return ""
	}

	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return message
}
