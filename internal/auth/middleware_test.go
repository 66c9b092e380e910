package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(method, path, body string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Params = params
	return c, w
}

func TestBodyStoreIDMismatch_TopLevel(t *testing.T) {
	obj := map[string]interface{}{"storeId": "store-B"}
	assert.True(t, bodyStoreIDMismatch(obj, "store-A"))
	assert.False(t, bodyStoreIDMismatch(obj, "store-B"))
}

func TestBodyStoreIDMismatch_NestedPayload(t *testing.T) {
	obj := map[string]interface{}{
		"payload": map[string]interface{}{"storeId": "store-B"},
	}
	assert.True(t, bodyStoreIDMismatch(obj, "store-A"))
	assert.False(t, bodyStoreIDMismatch(obj, "store-B"))
}

func TestBodyStoreIDMismatch_NoStoreID(t *testing.T) {
	obj := map[string]interface{}{"items": []interface{}{}}
	assert.False(t, bodyStoreIDMismatch(obj, "store-A"))
}

func TestFindStoreMismatch_PathParam(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/stores/store-B/status", "", gin.Params{{Key: "storeId", Value: "store-B"}})
	assert.True(t, findStoreMismatch(c, "store-A"))
}

func TestFindStoreMismatch_QueryParam(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/bills?storeId=store-B", "", nil)
	assert.True(t, findStoreMismatch(c, "store-A"))
}

func TestFindStoreMismatch_BodyField(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, "/sales", `{"storeId":"store-B","items":[]}`, nil)
	assert.True(t, findStoreMismatch(c, "store-A"))

	// body is re-buffered after the peek so downstream binding still works
	body, err := c.GetRawData()
	assert.NoError(t, err)
	assert.Contains(t, string(body), "store-B")
}

func TestFindStoreMismatch_NoMismatch(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, "/sales", `{"items":[]}`, nil)
	assert.False(t, findStoreMismatch(c, "store-A"))
}

func TestFromContext_RoundTrip(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/devices/me", "", nil)
	d := Device{DeviceID: "dev-1", StoreID: "store-A", StoreName: "Corner Shop", DeviceActive: true, StoreActive: true}
	attach(c, d)
	assert.Equal(t, d, FromContext(c))
}
