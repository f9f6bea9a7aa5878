package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFlashRoundTrip(t *testing.T) {
	// first request sets the flash
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)
	SetFlash(c, "Wrong username or password!")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "afisha_flash", cookies[0].Name)

	// the next request consumes it
	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/login", nil)
	c2.Request.AddCookie(cookies[0])

	assert.Equal(t, "Wrong username or password!", TakeFlash(c2))

	// and the consuming response clears the cookie
	cleared := w2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, "afisha_flash", cleared[0].Name)
	assert.True(t, cleared[0].MaxAge < 0)
}

func TestTakeFlashEmpty(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Empty(t, TakeFlash(c))
	assert.Empty(t, w.Result().Cookies(), "no clearing cookie without a flash")
}

func TestTemplatesParse(t *testing.T) {
	tmpl := Templates()
	for _, name := range []string{"index.tmpl", "login.tmpl", "register.tmpl", "add.tmpl", "edit.tmpl"} {
		assert.NotNil(t, tmpl.Lookup(name), "missing template %s", name)
	}
}
