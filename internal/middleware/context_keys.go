package middleware

import "github.com/gin-gonic/gin"

// librarianIDKey is the key used to store the authenticated librarian's ID.
const librarianIDKey = contextKey("librarianID")

// GetLibrarianIDFromContext retrieves the authenticated librarian ID from
// the Gin context. It returns the ID and a boolean indicating if it was found.
func GetLibrarianIDFromContext(c *gin.Context) (string, bool) {
	idVal, exists := c.Get(string(librarianIDKey))
	if !exists {
		// check in the request context as well
		ctxVal := c.Request.Context().Value(librarianIDKey)
		if ctxVal != nil {
			id, ok := ctxVal.(string)
			return id, ok
		}
		return "", false
	}

	id, ok := idVal.(string)
	if !ok {
		return "", false
	}

	return id, true
}
